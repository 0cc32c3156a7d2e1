package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/resume-extractor/internal/fields"
	"github.com/a3tai/resume-extractor/internal/pdf"
	"github.com/a3tai/resume-extractor/internal/record"
)

const (
	// Mode constants
	ModeBatch  = "batch"
	ModeAppend = "append"
	ModeStdio  = "stdio"

	// Default values
	DefaultOutput      = "parsed_resume_data.csv"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultWorkers     = 1

	envPrefix = "RESUME"
)

// ErrVersionRequested is returned by LoadFromFlags when --version is passed
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the résumé extractor
type Config struct {
	Mode string // "batch", "append" or "stdio"

	// Input and output
	Directory string
	Files     []string
	Output    string

	// Extraction
	Backend       string
	CountryCode   string
	SkillStrategy string
	SkillsFile    string
	IgnoreCase    bool
	Workers       int

	// CSV layout
	Columns       string
	IncludeStatus bool

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
	ConfigFile  string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:          ModeBatch,
		Directory:     currentDir,
		Output:        DefaultOutput,
		Backend:       string(pdf.BackendLedongthuc),
		SkillStrategy: fields.StrategyNouns,
		Workers:       DefaultWorkers,
		Columns:       string(record.SchemaExtended),
		IncludeStatus: true,
		Version:       "1.0.0",
		ServerName:    "resume-extractor",
		LogLevel:      DefaultLogLevel,
		MaxFileSize:   DefaultMaxFileSize,
	}
}

// LoadFromFlags reads .env, environment variables, an optional config file
// and command line flags, in increasing order of precedence
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	if checkVersionFlag() {
		return nil, ErrVersionRequested
	}

	pflag.Parse()

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(cfg)
	cfg.Files = pflag.Args()

	if cfg.Directory != "" {
		if expandedPath, err := filepath.Abs(cfg.Directory); err == nil {
			cfg.Directory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads .env from the working directory when present
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.Directory)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("backend", cfg.Backend)
	viper.SetDefault("country-code", cfg.CountryCode)
	viper.SetDefault("skills", cfg.SkillStrategy)
	viper.SetDefault("skills-file", cfg.SkillsFile)
	viper.SetDefault("ignore-case", cfg.IgnoreCase)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("columns", cfg.Columns)
	viper.SetDefault("include-status", cfg.IncludeStatus)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'batch' for a folder, 'append' for single files, 'stdio' for MCP")
	pflag.String("dir", cfg.Directory, "Directory containing PDF résumés (batch mode, MCP root)")
	pflag.String("output", cfg.Output, "CSV file to write (batch) or append to (append)")
	pflag.String("backend", cfg.Backend, "Text backend: 'ledongthuc' or 'docconv'")
	pflag.String("country-code", cfg.CountryCode, "Calling code used to normalize phone numbers, empty to keep them as found")
	pflag.String("skills", cfg.SkillStrategy, "Skills strategy: 'nouns' or 'taxonomy'")
	pflag.String("skills-file", cfg.SkillsFile, "YAML skills taxonomy for --skills=taxonomy")
	pflag.Bool("ignore-case", cfg.IgnoreCase, "Also accept .PDF and other case variants")
	pflag.Int("workers", cfg.Workers, "Documents processed in parallel")
	pflag.String("columns", cfg.Columns, "CSV columns: 'minimal' or 'extended'")
	pflag.Bool("include-status", cfg.IncludeStatus, "Add status and error columns")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.String("config", "", "Optional YAML, TOML or JSON config file")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "dir", "output", "backend", "country-code", "skills", "skills-file",
		"ignore-case", "workers", "columns", "include-status", "loglevel", "maxfilesize", "config",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nResume Extractor - pulls contact details, skills, experience and education out of PDF résumés\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --dir=./resumes --output=out.csv          # whole folder, overwrite out.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=append --output=out.csv cv.pdf     # add one résumé\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=stdio --dir=./resumes              # MCP server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables (also read from .env):\n")
		fmt.Fprintf(os.Stderr, "  RESUME_MODE          Run mode\n")
		fmt.Fprintf(os.Stderr, "  RESUME_DIR           PDF directory\n")
		fmt.Fprintf(os.Stderr, "  RESUME_OUTPUT        CSV output path\n")
		fmt.Fprintf(os.Stderr, "  RESUME_COUNTRY_CODE  Phone calling code\n")
		fmt.Fprintf(os.Stderr, "  RESUME_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  RESUME_MAXFILESIZE   Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() bool {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Directory = viper.GetString("dir")
	cfg.Output = viper.GetString("output")
	cfg.Backend = viper.GetString("backend")
	cfg.CountryCode = viper.GetString("country-code")
	cfg.SkillStrategy = viper.GetString("skills")
	cfg.SkillsFile = viper.GetString("skills-file")
	cfg.IgnoreCase = viper.GetBool("ignore-case")
	cfg.Workers = viper.GetInt("workers")
	cfg.Columns = viper.GetString("columns")
	cfg.IncludeStatus = viper.GetBool("include-status")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.ConfigFile = viper.GetString("config")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeBatch:
		if c.Directory == "" && len(c.Files) == 0 {
			return errors.New("batch mode needs a directory or at least one file")
		}
	case ModeAppend:
		if len(c.Files) == 0 {
			return errors.New("append mode needs at least one file")
		}
	case ModeStdio:
		if c.Directory == "" {
			return errors.New("stdio mode needs a root directory")
		}
	default:
		return errors.New("mode must be one of 'batch', 'append' or 'stdio'")
	}

	if c.Output == "" {
		return errors.New("output path cannot be empty")
	}

	if c.Columns != string(record.SchemaMinimal) && c.Columns != string(record.SchemaExtended) {
		return fmt.Errorf("invalid columns: %s (must be one of: minimal, extended)", c.Columns)
	}

	validBackend := false
	for _, b := range pdf.Backends() {
		if c.Backend == string(b) {
			validBackend = true
		}
	}
	if !validBackend {
		return fmt.Errorf("invalid backend: %s", c.Backend)
	}

	if c.SkillStrategy != fields.StrategyNouns && c.SkillStrategy != fields.StrategyTaxonomy {
		return fmt.Errorf("invalid skills strategy: %s (must be one of: nouns, taxonomy)", c.SkillStrategy)
	}
	if c.SkillsFile != "" && c.SkillStrategy != fields.StrategyTaxonomy {
		return errors.New("skills file requires --skills=taxonomy")
	}

	if c.CountryCode != "" {
		if len(c.CountryCode) > 3 || strings.Trim(c.CountryCode, "0123456789") != "" {
			return fmt.Errorf("invalid country code: %s (1 to 3 digits)", c.CountryCode)
		}
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Directory: %s, Files: %d, Output: %s, Backend: %s, Columns: %s, "+
		"Skills: %s, Workers: %d, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Directory, len(c.Files), c.Output, c.Backend, c.Columns,
		c.SkillStrategy, c.Workers, c.LogLevel, c.MaxFileSize)
}

// IsBatchMode returns true when a folder or file list is written to a fresh CSV
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsAppendMode returns true when files are appended to an existing CSV
func (c *Config) IsAppendMode() bool {
	return c.Mode == ModeAppend
}

// IsStdioMode returns true if the MCP server runs over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
