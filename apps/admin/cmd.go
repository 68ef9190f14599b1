package main

import (
	"io"
	"log"
	"sort"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/student"
	logsvc "github.com/trezcool/alama/services/logger"
	inmemdb "github.com/trezcool/alama/storage/database/inmem"
	"github.com/trezcool/alama/storage/seed"
)

var errNoRoster = errors.New("no roster file: use --file or set records.seedFile")

// commandLine holds the global flags of every command.
type commandLine struct {
	conf       *core.Config
	curriculum string
	file       string
	verbose    bool
}

func newRootCommand(conf *core.Config) *cobra.Command {
	cli := &commandLine{conf: conf}

	cmd := &cobra.Command{
		Use:   "alama-admin",
		Short: "Alama admin - student records from the command line",
		Long: `Load a YAML roster through the same rules as the API
and print the roster, a student's record or the curriculum.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cli.curriculum, "curriculum", conf.Records.Curriculum, "curriculum of the records (science|general)")
	cmd.PersistentFlags().StringVarP(&cli.file, "file", "f", conf.Records.SeedFile, "YAML roster to load")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "log loaded records to stderr")

	cmd.AddCommand(cli.newRosterCommand())
	cmd.AddCommand(cli.newShowCommand())
	cmd.AddCommand(cli.newCurriculumCommand())

	return cmd
}

// loadService returns a student service holding the roster file's records.
func (cli *commandLine) loadService(cmd *cobra.Command) (student.Service, error) {
	c, err := student.CurriculumByName(cli.curriculum)
	if err != nil {
		return nil, err
	}
	if cli.file == "" {
		return nil, errNoRoster
	}

	db, err := inmemdb.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)

	out := io.Discard
	if cli.verbose {
		out = cmd.ErrOrStderr()
	}
	logger := logsvc.NewRollbarLogger(log.New(out, "ADMIN : ", log.LstdFlags), cli.conf)
	logger.Enable(false)

	svc := student.NewService(inmemdb.NewStudentRepository(db), validate, c, logger)
	if _, err = seed.LoadFile(cmd.Context(), cli.file, svc); err != nil {
		return nil, translateError(err, translator)
	}
	return svc, nil
}

// translateError replaces the validation errors wrapped in err by their translated messages.
func translateError(err error, translator ut.Translator) error {
	vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
	if !ok {
		return err
	}

	fldErrs := core.TranslateErrors(vErrs, translator)
	fields := make([]string, 0, len(fldErrs))
	for fld := range fldErrs {
		fields = append(fields, fld)
	}
	sort.Strings(fields)

	msgs := make([]string, len(fields))
	for i, fld := range fields {
		msgs[i] = fld + ": " + fldErrs[fld]
	}
	prefix := strings.TrimSuffix(err.Error(), vErrs.Error())
	return errors.New(prefix + strings.Join(msgs, "; "))
}
