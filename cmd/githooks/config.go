package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palotasb/githooks/internal/config"
	"github.com/palotasb/githooks/internal/log"
	"github.com/palotasb/githooks/internal/output"
)

func initGlobalConfig(cmd *cobra.Command, force, stdout bool) error {
	content := config.DefaultGlobalConfig()

	if stdout {
		output.FromContext(cmd.Context()).Print(content)
		return nil
	}

	path, err := config.GlobalPath()
	if err != nil {
		return fmt.Errorf("locate global config: %w", err)
	}
	if err := config.WriteTemplate(path, content, force); err != nil {
		return err
	}

	log.FromContext(cmd.Context()).Printf("Created config file: %s\n", path)
	return nil
}

func initLocalConfig(cmd *cobra.Command, opts repoOptions, force, stdout bool) error {
	content := config.DefaultLocalConfig()

	if stdout {
		output.FromContext(cmd.Context()).Print(content)
		return nil
	}

	repo, ok := insideRepo(cmd, opts)
	if !ok {
		return fmt.Errorf("--local requires a git repository")
	}

	path := config.LocalPath(repo.Root)
	if err := config.WriteTemplate(path, content, force); err != nil {
		return err
	}

	log.FromContext(cmd.Context()).Printf("Created local config: %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, opts repoOptions, global bool) error {
	ctx := cmd.Context()

	var (
		cfg *config.Config
		err error
	)
	repo, ok := insideRepo(cmd, opts)
	if global || !ok {
		cfg, err = globalConfig(ctx)
	} else {
		cfg, err = effectiveConfig(ctx, repo.Root)
	}
	if err != nil {
		return err
	}

	if cfg.Disabled {
		log.FromContext(ctx).Printf("# githooks is disabled by %s\n", config.EnvEnabled)
	}
	return config.Encode(output.FromContext(ctx).Writer(), cfg)
}
