package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diillson/finsight-dashboard-go/internal/adapter/driven/archive"
	"github.com/diillson/finsight-dashboard-go/internal/adapter/driven/backend"
	"github.com/diillson/finsight-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/finsight-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/finsight-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/finsight-dashboard-go/internal/application/usecase"
	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/log"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/diillson/finsight-dashboard-go/pkg/console"
	"github.com/diillson/finsight-dashboard-go/pkg/version"
)

func main() {
	// Inicializa os repositórios que não dependem da configuração
	configRepo := config.NewConfigRepository()
	exportRepo := export.NewExportRepository()
	consoleImpl := console.NewConsole()

	// O restante é montado depois que a configuração é resolvida
	factory := func(cfg *types.Config, logger *log.Logger) (*usecase.DashboardUseCase, error) {
		backendRepo, err := backend.NewHTTPRepository(cfg, logger)
		if err != nil {
			return nil, err
		}

		var archiveRepo repository.ArchiveRepository
		if cfg.Archive.Enabled() {
			archiveRepo = archive.NewS3Repository(cfg.Archive, logger)
		}

		return usecase.NewDashboardUseCase(backendRepo, exportRepo, archiveRepo, consoleImpl, cfg, logger), nil
	}

	app := cli.NewCLIApp(version.Version, configRepo, factory)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
