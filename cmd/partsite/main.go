// Command partsite serves, builds, checks and scaffolds a partsite content
// tree.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/takeparts/partsite"
)

// version is set at build time via ldflags.
var version = "dev"

// settings is the CLI view of partsite.Config plus the build output
// directory. Values come from flags, PARTSITE_* environment variables and
// an optional partsite.yaml, in that order of precedence.
type settings struct {
	ContentDir    string        `mapstructure:"contentDir"`
	StaticDir     string        `mapstructure:"staticDir"`
	Addr          string        `mapstructure:"addr"`
	BaseURL       string        `mapstructure:"baseURL"`
	PostCacheTTL  time.Duration `mapstructure:"postCacheTTL"`
	FeedTTL       int           `mapstructure:"feedTTL"`
	ExcerptLength int           `mapstructure:"excerptLength"`
	SearchLimit   int           `mapstructure:"searchLimit"`
	SearchWindow  time.Duration `mapstructure:"searchWindow"`
	Watch         bool          `mapstructure:"watch"`
	OutDir        string        `mapstructure:"outDir"`
}

func (s settings) config() partsite.Config {
	return partsite.Config{
		ContentDir:    s.ContentDir,
		StaticDir:     s.StaticDir,
		Addr:          s.Addr,
		BaseURL:       s.BaseURL,
		PostCacheTTL:  s.PostCacheTTL,
		FeedTTL:       s.FeedTTL,
		ExcerptLength: s.ExcerptLength,
		SearchLimit:   s.SearchLimit,
		SearchWindow:  s.SearchWindow,
		Watch:         s.Watch,
	}
}

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	s       settings
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "partsite",
		Short: "Corporate site and blog engine for Markdown/MDX content",
		Long: `partsite serves a corporate site with a tagged, searchable blog from a
directory of Markdown/MDX files, and exports its RSS feed, sitemap and
search index for static hosting.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgFile, "config", "", "config file (default is ./partsite.yaml)")
	pf.String("content", "content", "content directory")
	pf.String("static", "public", "static asset directory")
	pf.String("base-url", "", "override the site URL from the content config")
	_ = c.v.BindPFlag("contentDir", pf.Lookup("content"))
	_ = c.v.BindPFlag("staticDir", pf.Lookup("static"))
	_ = c.v.BindPFlag("baseURL", pf.Lookup("base-url"))

	root.AddCommand(
		c.serveCmd(),
		c.buildCmd(),
		c.checkCmd(),
		c.newCmd(),
		versionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// load merges defaults, the config file, environment and flags into c.s.
func (c *cli) load(_ *cobra.Command) error {
	v := c.v
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "public")
	v.SetDefault("addr", ":3000")
	v.SetDefault("baseURL", "")
	v.SetDefault("postCacheTTL", 5*time.Minute)
	v.SetDefault("feedTTL", 1440)
	v.SetDefault("excerptLength", 160)
	v.SetDefault("searchLimit", 30)
	v.SetDefault("searchWindow", time.Minute)
	v.SetDefault("watch", false)
	v.SetDefault("outDir", "dist")

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("partsite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PARTSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || c.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&c.s); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("partsite %s\n", version)
		},
	}
}
