// Command questions maintains the question document of the configured store.
//
//	questions --init
//	questions --export questions.json   (or - for stdout)
//	questions --import questions.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/responder/responder/internal/config"
	"github.com/responder/responder/internal/database"
	"github.com/responder/responder/internal/question"
	"github.com/responder/responder/internal/question/repository"
	"github.com/responder/responder/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		logger.Fatalf("questions: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("questions", pflag.ContinueOnError)
	fs.SetOutput(stdout)
	initDoc := fs.Bool("init", false, "create an empty document when none exists")
	export := fs.String("export", "", "write the document as indented JSON to `file` (- for stdout)")
	imp := fs.String("import", "", "replace the document with the JSON array in `file`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*initDoc && *export == "" && *imp == "" {
		fs.PrintDefaults()
		return errors.New("one of --init, --export or --import is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, closeStore, err := database.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	defer closeStore()
	repo := repository.NewQuestionRepository(store)

	if *initDoc {
		qs, err := repo.GetQuestions(ctx)
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			if err := repo.Replace(ctx, question.Document{}); err != nil {
				return err
			}
		}
		logger.Infof("document at %s holds %d questions", repo.Location(), len(qs))
	}

	if *imp != "" {
		b, err := os.ReadFile(*imp)
		if err != nil {
			return err
		}
		var doc question.Document
		if err := json.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", *imp, err)
		}
		if err := repo.Replace(ctx, doc); err != nil {
			return err
		}
		logger.Infof("imported %d questions into %s", len(doc), repo.Location())
	}

	if *export != "" {
		qs, err := repo.GetQuestions(ctx)
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(qs, "", "  ")
		if err != nil {
			return err
		}
		b = append(b, '\n')
		if *export == "-" {
			_, err = stdout.Write(b)
			return err
		}
		return os.WriteFile(*export, b, 0o644)
	}
	return nil
}
