package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/malusev998/currency-converter"
	"github.com/malusev998/currency-converter/services"
	"github.com/malusev998/currency-converter/storage"
)

const envPrefix = "CCONVERTER"

type (
	Config struct {
		Ctx context.Context
	}

	flags struct {
		configFile   string
		debug        bool
		apiSource    string
		useHTTPS     bool
		enableCache  bool
		cacheMinutes int
	}

	// app is everything a command needs, built after flags are parsed.
	app struct {
		config  *AppConfig
		logger  *logrus.Logger
		storage currency.Storage
	}
)

func NewRootCommand() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:           "cconverter",
		Short:         "Currency rates and conversion",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&f.configFile, "config", "./config.yml", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&f.apiSource, "api", "", "Rate provider: openexchange or yahoo")
	rootCmd.PersistentFlags().BoolVar(&f.useHTTPS, "https", true, "Use https for upstream requests")
	rootCmd.PersistentFlags().BoolVar(&f.enableCache, "cache", true, "Cache rate tables")
	rootCmd.PersistentFlags().IntVar(&f.cacheMinutes, "cache-min", currency.DefaultCacheMinutes, "Cache lifetime in minutes")

	rootCmd.AddCommand(
		ratesCommand(f),
		convertCommand(f),
		warmCommand(f),
		serveCommand(f),
	)

	return rootCmd
}

func Execute(config *Config) error {
	rootCmd := NewRootCommand()

	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	return rootCmd.ExecuteContext(config.Ctx)
}

func newViper(configFile string) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(absolutePath); os.IsNotExist(err) {
		return v, nil
	}

	v.SetConfigFile(absolutePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return v, nil
}

// overrides turns explicitly passed flags into per converter overrides.
func (f *flags) overrides(cmd *cobra.Command) (services.Overrides, error) {
	var overrides services.Overrides

	persistent := cmd.Flags()

	if persistent.Changed("api") {
		provider, err := currency.ConvertToProviderFromString(f.apiSource)
		if err != nil {
			return overrides, err
		}

		overrides.APISource = &provider
	}

	if persistent.Changed("https") {
		overrides.UseHTTPS = &f.useHTTPS
	}

	if persistent.Changed("cache") {
		overrides.EnableCache = &f.enableCache
	}

	if persistent.Changed("cache-min") {
		overrides.CacheMinutes = &f.cacheMinutes
	}

	return overrides, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func newApp(cmd *cobra.Command, f *flags) (*app, error) {
	v, err := newViper(f.configFile)
	if err != nil {
		return nil, err
	}

	appConfig, err := getConfig(commandContext(cmd), v)
	if err != nil {
		return nil, err
	}

	overrides, err := f.overrides(cmd)
	if err != nil {
		return nil, err
	}

	appConfig.Settings = overrides.Apply(appConfig.Settings)

	logger, err := newLogger(cmd.ErrOrStderr(), appConfig.Log, f.debug)
	if err != nil {
		return nil, err
	}

	st, err := storage.NewStorage(appConfig.Storage, appConfig.StorageConfig[appConfig.Storage])
	if err != nil {
		return nil, err
	}

	logger.WithField("storage", st.GetStorageProviderName()).Debug("storage ready")

	return &app{config: appConfig, logger: logger, storage: st}, nil
}

func (a *app) converter() *services.Converter {
	return services.NewConverter(services.ConverterConfig{
		Settings: a.config.Settings,
		Cache:    a.storage,
		Logger:   a.logger,
		Timeout:  a.config.Timeout,
	})
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		a.logger.WithError(err).Warn("closing storage")
	}
}

func printJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}
