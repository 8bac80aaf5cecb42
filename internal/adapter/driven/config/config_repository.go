package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/diillson/finsight-dashboard-go/internal/domain/repository"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "FINSIGHT_"

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedConfigFormat, fileExtension)
	}

	config.FillDefaults()
	return &config, nil
}

// LoadEnv loads the given dotenv files (".env" when none are named) and then applies
// FINSIGHT_* variables on top of cfg. Variables already set in the process win over dotenv values.
// A missing default ".env" is not an error; a missing named file is.
func (r *ConfigRepositoryImpl) LoadEnv(cfg *types.Config, envFiles ...string) error {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return fmt.Errorf("error loading env files %v: %w", envFiles, err)
	}

	var problems []string

	setString(&cfg.BackendURL, "BACKEND_URL")
	setString(&cfg.ReportName, "REPORT_NAME")
	setString(&cfg.Dir, "DIR")
	setString(&cfg.Archive.Bucket, "ARCHIVE_BUCKET")
	setString(&cfg.Archive.Prefix, "ARCHIVE_PREFIX")
	setString(&cfg.Archive.Region, "ARCHIVE_REGION")

	if value := getEnv("REPORT_TYPE"); value != "" {
		cfg.ReportType = splitList(value)
	}
	if value := getEnv("TIMEOUT"); value != "" {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%sTIMEOUT must be a whole number of seconds, got '%s'", EnvPrefix, value))
		} else {
			cfg.TimeoutSeconds = seconds
		}
	}
	if value := getEnv("DEBUG"); value != "" {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%sDEBUG must be a boolean, got '%s'", EnvPrefix, value))
		} else {
			cfg.Debug = debug
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid environment:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
}

func setString(field *string, key string) {
	if value := getEnv(key); value != "" {
		*field = value
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
