package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/syllabify/internal"
)

// CreateRootCommand creates and configures the root cobra command.
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "syllabify CORPUS",
		Short: "Syllabic event file builder",
		Long: `syllabify turns a line-oriented text corpus into an event file that
pairs the phonological syllables of each line (cues) with its words
(outcomes), as training data for discriminative learning models.

Words are transcribed to IPA via espeak-ng (or the OpenAI API) and
segmented into syllables; lines are processed in parallel while the
output keeps the corpus order.

Examples:
  syllabify corpus.txt                          # English, espeak-ng, all cores
  syllabify -l pl -o events.gz corpus.txt       # Polish
  syllabify --workers 4 --chunk-size 500 big.txt`,
		Args:    cobra.ExactArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.syllabify.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Language: en, pl, or 'config' for a profile from the config file")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Event file path (default: CORPUS.events.gz)")
	cmd.Flags().IntVar(&flags.Limit, "limit", 0, "Process only the first N corpus lines")
	cmd.Flags().BoolVar(&flags.NoBoundaries, "no-boundaries", false, "Do not wrap syllable groups in # word-boundary markers")
	cmd.Flags().IntVar(&flags.CacheSize, "cache-size", 0, "Syllabification cache capacity in entries (0 = default)")
	cmd.Flags().StringVar(&flags.Transcriber, "transcriber", flags.Transcriber, "Transcription provider: espeak, openai or table")
	cmd.Flags().StringVar(&flags.Voice, "espeak-voice", "", "espeak-ng voice (default: the profile's voice)")
	cmd.Flags().StringVar(&flags.TranscriptionDB, "transcription-db", "", "SQLite file caching word transcriptions across runs")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", "", "OpenAI model for the openai transcriber")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", flags.Workers, "Parallel workers (default: all cores)")
	cmd.Flags().IntVar(&flags.ChunkSize, "chunk-size", flags.ChunkSize, "Lines per worker dispatch; higher amortizes dispatch, costs memory")
	cmd.Flags().BoolVar(&flags.SkipErrors, "skip-errors", false, "Skip lines that fail instead of aborting the run")

	bindFlagsToViper(cmd.Flags())
}

func bindFlagsToViper(flags *pflag.FlagSet) {
	viper.BindPFlag("language", flags.Lookup("language"))
	viper.BindPFlag("syllable.cache_size", flags.Lookup("cache-size"))
	viper.BindPFlag("transcribe.provider", flags.Lookup("transcriber"))
	viper.BindPFlag("transcribe.voice", flags.Lookup("espeak-voice"))
	viper.BindPFlag("transcribe.db", flags.Lookup("transcription-db"))
	viper.BindPFlag("transcribe.openai_model", flags.Lookup("openai-model"))
	viper.BindPFlag("pipeline.workers", flags.Lookup("workers"))
	viper.BindPFlag("pipeline.chunk_size", flags.Lookup("chunk-size"))
}

// ResolveFlags overlays configuration-file values onto flags, to be
// called once InitConfig has read the config. Through the viper
// bindings, a flag set on the command line wins over the config file,
// which wins over the flag's default.
func ResolveFlags(flags *Flags) {
	flags.Language = viper.GetString("language")
	flags.CacheSize = viper.GetInt("syllable.cache_size")
	flags.Transcriber = viper.GetString("transcribe.provider")
	flags.Voice = viper.GetString("transcribe.voice")
	flags.TranscriptionDB = viper.GetString("transcribe.db")
	flags.OpenAIModel = viper.GetString("transcribe.openai_model")
	flags.Workers = viper.GetInt("pipeline.workers")
	flags.ChunkSize = viper.GetInt("pipeline.chunk_size")
}

// InitConfig initializes viper configuration.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".syllabify" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".syllabify")
	}

	// Environment variables
	viper.SetEnvPrefix("SYLLABIFY")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config.
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("transcribe.openai_key")
}
