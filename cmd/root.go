package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-tui/inkwell/pkg/config"
	"github.com/inkwell-tui/inkwell/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "inkwell [file.md]",
	Short: "Replay markdown as a typed-out stream",
	Long: `Inkwell renders a markdown document onto the terminal the way a chat
client streams a reply: text reveals in timed runs, headings and code blocks
land whole, and a click speeds things up. With no file it plays a built-in
sample.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := logger.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}
		defer logger.Close()

		document := sampleDocument
		title := "sample"
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}
			document = string(data)
			title = args[0]
		}

		return RunApplication(&AppConfig{
			Config:   config.Get(),
			Document: document,
			Title:    title,
		})
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .inkwell/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().Int("base-delay", 50, "base reveal delay in milliseconds")
	viper.BindPFlag("playback.base_delay_ms", rootCmd.PersistentFlags().Lookup("base-delay"))

	rootCmd.PersistentFlags().Bool("no-mouse", false, "disable mouse support")
	viper.BindPFlag("no_mouse", rootCmd.PersistentFlags().Lookup("no-mouse"))

	viper.SetDefault("mouse", true)

	viper.SetDefault("logging.log_file", "./.inkwell/system.log")
	viper.SetDefault("logging.preserve", true)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("playback.base_delay_ms", 50)
	viper.SetDefault("playback.speed_cap", 8)
	viper.SetDefault("playback.debounce_ms", 300)
	viper.SetDefault("playback.indicator_visible_ms", 1500)
	viper.SetDefault("playback.indicator_fade_ms", 300)
	viper.SetDefault("playback.cursor_glyph", "▌")

	viper.SetDefault("resources.health_check_seconds", 30)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./.inkwell")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

const sampleDocument = `# Inkwell

Markdown playback for the terminal. Click a message to speed it up, click
again inside the same burst to finish instantly.

## What streams how

- Plain text reveals word by word
- Headings and rules land in one piece
- So do code blocks:

` + "```go" + `
func main() {
	fmt.Println("hello from inkwell")
}
` + "```" + `

> Blockquotes stream like any other block, just indented
> behind a bar.

| Key     | Action            |
| ------- | ----------------- |
| click   | double speed      |
| 2×click | instant           |
| q / Esc | quit              |

That is the whole tour. *Enjoy the show.*
`
