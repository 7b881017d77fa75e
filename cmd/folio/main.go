// Command folio serves, exports and lints a folio site.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
	"github.com/eringen/folio/toc"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile string
	siteCfg folio.SiteConfig
	logger  = log.New("folio")
)

// fileConfig mirrors folio.yaml.
type fileConfig struct {
	Name          string        `mapstructure:"name"`
	URL           string        `mapstructure:"url"`
	Description   string        `mapstructure:"description"`
	Author        string        `mapstructure:"author"`
	Language      string        `mapstructure:"language"`
	Locale        string        `mapstructure:"locale"`
	Timezone      string        `mapstructure:"timezone"`
	Addr          string        `mapstructure:"addr"`
	ArticleDir    string        `mapstructure:"articleDir"`
	CraftDir      string        `mapstructure:"craftDir"`
	StaticDir     string        `mapstructure:"staticDir"`
	SessionSecret string        `mapstructure:"sessionSecret"`
	CookieSecure  bool          `mapstructure:"cookieSecure"`
	ContentTTL    time.Duration `mapstructure:"contentTTL"`
	CoverWidth    int           `mapstructure:"coverWidth"`
	TOC           struct {
		Min int `mapstructure:"min"`
		Max int `mapstructure:"max"`
	} `mapstructure:"toc"`
}

func (f fileConfig) siteConfig() folio.SiteConfig {
	return folio.SiteConfig{
		Name:          f.Name,
		URL:           f.URL,
		Description:   f.Description,
		Author:        f.Author,
		Language:      f.Language,
		Locale:        f.Locale,
		Timezone:      f.Timezone,
		Addr:          f.Addr,
		ArticleDir:    f.ArticleDir,
		CraftDir:      f.CraftDir,
		StaticDir:     f.StaticDir,
		SessionSecret: f.SessionSecret,
		CookieSecure:  f.CookieSecure,
		ContentTTL:    f.ContentTTL,
		CoverWidth:    f.CoverWidth,
		TOCRange:      toc.LevelRange{Min: toc.Level(f.TOC.Min), Max: toc.Level(f.TOC.Max)},
	}
}

var rootCmd = &cobra.Command{
	Use:           "folio",
	Short:         "folio - a personal blog and portfolio engine built with Go, Echo, and templ",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "new" || cmd.Name() == "version" {
			return nil
		}
		return initializeConfig(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("folio %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
	rootCmd.AddCommand(versionCmd)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("name", "Folio")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("language", "ko")
	v.SetDefault("locale", "")
	v.SetDefault("timezone", "Asia/Seoul")
	v.SetDefault("addr", ":3000")
	v.SetDefault("articleDir", "content")
	v.SetDefault("craftDir", "craft")
	v.SetDefault("staticDir", "public")
	v.SetDefault("sessionSecret", "")
	v.SetDefault("cookieSecure", false)
	v.SetDefault("contentTTL", "5m")
	v.SetDefault("coverWidth", 640)
	v.SetDefault("toc.min", 2)
	v.SetDefault("toc.max", 6)

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func initializeConfig(cmd *cobra.Command) error {
	v := newViper()
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("addr", f); err != nil {
			return err
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
		logger.Info("no folio.yaml found, using defaults and FOLIO_ environment variables")
	} else {
		logger.Infof("using config file %s", v.ConfigFileUsed())
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	siteCfg = fc.siteConfig()
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
