package cli

import (
	"fmt"

	"github.com/diillson/finsight-dashboard-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$$ /$$            /$$$$$$  /$$           /$$         /$$    
        | $$_____/|__/           /$$__  $$|__/          | $$        | $$    
        | $$       /$$ /$$$$$$$ | $$  \__/ /$$  /$$$$$$ | $$$$$$$  /$$$$$$  
        | $$$$$   | $$| $$__  $$|  $$$$$$ | $$ /$$__  $$| $$__  $$|_  $$_/  
        | $$__/   | $$| $$  \ $$ \____  $$| $$| $$  \ $$| $$  \ $$  | $$    
        | $$      | $$| $$  | $$ /$$  \ $$| $$| $$  | $$| $$  | $$  | $$ /$$
        | $$      | $$| $$  | $$|  $$$$$$/| $$|  $$$$$$$| $$  | $$  |  $$$$/
        |__/      |__/|__/  |__/ \______/ |__/ \____  $$|__/  |__/   \___/  
                                               /$$  \ $$                    
                                              |  $$$$$$/                    
                                               \______/                     
        `
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(green(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("FinSight Dashboard CLI (v%s)", formattedVersion)))
}
