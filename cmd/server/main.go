package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dasmlab/glosa/pkg/config"
)

var version = "0.1.0"

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "glosa",
	Short: "Translation gateway",
	Long: `Glosa serves a small translation web page and a JSON API that forwards
text to a translation provider.

Engines: gtranslate (default, no credentials), libretranslate, google.

Every flag can also be set with a GLOSA_ environment variable
(e.g. GLOSA_PORT=8080) or in glosa.yaml.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./glosa.yaml or /etc/glosa/glosa.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Bool("debug", false, "debug mode (forces debug logging)")
	pf.String("engine", "gtranslate", "translation engine: gtranslate, libretranslate or google")
	pf.String("engine-url", "", "LibreTranslate base URL")
	pf.String("engine-api-key", "", "LibreTranslate or Google API key")
	pf.Duration("engine-timeout", 0, "provider HTTP timeout (default 30s)")
	pf.String("google-credentials", "", "Google service-account JSON file")
	pf.String("host", "127.0.0.1", "HTTP bind host")
	pf.Int("port", 5000, "HTTP port")
	pf.Int("grpc-health-port", 0, "gRPC health service port (0 disables)")
	pf.Duration("shutdown-timeout", 0, "graceful shutdown window (default 30s)")

	rootCmd.AddCommand(serveCmd, languagesCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v, cfgFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
