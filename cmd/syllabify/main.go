package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/syllabify/internal/cli"
	"codeberg.org/snonux/syllabify/internal/corpus"
	"codeberg.org/snonux/syllabify/internal/eventfile"
	"codeberg.org/snonux/syllabify/internal/language"
	"codeberg.org/snonux/syllabify/internal/pipeline"
	"codeberg.org/snonux/syllabify/internal/syllable"
	"codeberg.org/snonux/syllabify/internal/transcribe"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runCommand(args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(args []string, flags *cli.Flags) error {
	corpusPath := args[0]
	cli.ResolveFlags(flags)

	profile, err := resolveProfile(flags)
	if err != nil {
		return err
	}

	pattern, err := syllable.Compile(profile)
	if err != nil {
		return err
	}
	syllabifier, err := syllable.NewSyllabifier(pattern, flags.CacheSize)
	if err != nil {
		return err
	}

	forbidden, err := regexp.Compile(profile.NotSymbol)
	if err != nil {
		return fmt.Errorf("compile forbidden-symbol pattern %q: %w", profile.NotSymbol, err)
	}

	transcriber, cleanup, err := buildTranscriber(flags, profile)
	if err != nil {
		return err
	}
	defer cleanup()

	processor, err := corpus.NewProcessor(corpus.Config{
		Syllabifier:     syllabifier,
		Transcriber:     transcriber,
		Forbidden:       forbidden,
		AddBoundaries:   !flags.NoBoundaries,
		SkipFailedWords: flags.SkipErrors,
	})
	if err != nil {
		return err
	}

	output := flags.Output
	if output == "" {
		output = corpusPath + ".events.gz"
	}

	onError := pipeline.Abort
	if flags.SkipErrors {
		onError = pipeline.SkipLines
	}

	// Ctrl-C stops dispatch and lets in-flight chunks drain.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = eventfile.Build(ctx, corpusPath, output, processor, eventfile.BuildOptions{
		Pipeline: pipeline.Config{
			Workers:   flags.Workers,
			ChunkSize: flags.ChunkSize,
			OnError:   onError,
		},
		Limit: flags.Limit,
	})
	return err
}

func resolveProfile(flags *cli.Flags) (language.Profile, error) {
	if flags.Language == "config" {
		return language.FromViper(viper.GetViper())
	}
	profile, ok := language.Builtin(flags.Language)
	if !ok {
		return language.Profile{}, fmt.Errorf(
			"unknown language %q (built-in: en, pl; use --language config for a custom profile)",
			flags.Language)
	}
	return profile, nil
}

func buildTranscriber(flags *cli.Flags, profile language.Profile) (transcribe.Transcriber, func(), error) {
	voice := flags.Voice
	if voice == "" {
		voice = profile.Voice
	}

	transcriber, err := transcribe.NewTranscriber(&transcribe.Config{
		Provider:    flags.Transcriber,
		Language:    profile.Language,
		Voice:       voice,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: flags.OpenAIModel,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if flags.TranscriptionDB != "" {
		store, err := transcribe.OpenStore(flags.TranscriptionDB)
		if err != nil {
			return nil, nil, err
		}
		transcriber = transcribe.Cached(transcriber, store, profile.Language)
		cleanup = func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: closing transcription store: %v\n", err)
			}
		}
	}

	if err := transcriber.IsAvailable(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("transcriber %s not available: %w", transcriber.Name(), err)
	}
	return transcriber, cleanup, nil
}
