package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/antigone-study/backend/internal/models"
	"github.com/antigone-study/backend/internal/roster"
	"github.com/antigone-study/backend/internal/services"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type studentDirectory interface {
	SaveStudents(ctx context.Context, students []models.Student) error
	VerifyStudent(ctx context.Context, username, password string) (*models.Student, error)
}

type storeBackups interface {
	WriteTo(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, backup *models.Backup, clear bool) (*models.ImportResult, error)
}

type commandLine struct {
	directory studentDirectory
	backups   storeBackups
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  roster import -input FILE [-sheet NAME] [-output FILE] [-store] - import a class list (.xlsx or .csv)")
	fmt.Fprintln(cli.out, "  roster check -username USERNAME - check credentials against the roster, the password is prompted next")
	fmt.Fprintln(cli.out, "  backup export [-output FILE] - export the store as JSON, to stdout by default")
	fmt.Fprintln(cli.out, "  backup import -input FILE [-clear] - restore a backup, -clear removes entries missing from it")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 3 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] + " " + args[2] {
	case "roster import":
		return cli.rosterImport(ctx, args[3:])
	case "roster check":
		return cli.rosterCheck(ctx, args[3:])
	case "backup export":
		return cli.backupExport(ctx, args[3:])
	case "backup import":
		return cli.backupImport(ctx, args[3:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) rosterImport(ctx context.Context, args []string) error {
	defaults := roster.DefaultImportConfig()

	cmd := cli.newFlagSet("roster import")
	input := cmd.String("input", "", "Class list to import (.xlsx or .csv)")
	sheet := cmd.String("sheet", defaults.SheetName, "Sheet to read, Excel only")
	output := cmd.String("output", "", "Write the roster as JSON to this file")
	store := cmd.Bool("store", false, "Replace the roster cached in the store")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		cmd.Usage()
		return errHelp
	}

	importConfig := defaults
	importConfig.FilePath = *input
	importConfig.SheetName = *sheet

	result, err := roster.Import(importConfig)
	if result != nil {
		fmt.Fprintf(cli.out, "Processed %d rows, imported %d, skipped %d\n", result.TotalProcessed, len(result.Students), result.Skipped)
		for _, msg := range result.Errors {
			fmt.Fprintf(cli.out, "  %s\n", msg)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to import roster: %w", err)
	}

	if *output != "" {
		if err := roster.WriteFile(*output, result.Students); err != nil {
			return fmt.Errorf("failed to write roster: %w", err)
		}
		fmt.Fprintf(cli.out, "Roster written to %s\n", *output)
	}
	if *store {
		if err := cli.directory.SaveStudents(ctx, result.Students); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Roster saved to the store")
	}
	return nil
}

func (cli *commandLine) rosterCheck(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("roster check")
	username := cmd.String("username", "", "The student's username. The password will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		cmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if !services.CredentialsProvided(*username, string(pwd)) {
		cmd.Usage()
		return errHelp
	}

	student, err := cli.directory.VerifyStudent(ctx, *username, string(pwd))
	if err != nil {
		return err
	}
	if student == nil {
		fmt.Fprintln(cli.out, "No student matches these credentials")
		return nil
	}
	fmt.Fprintf(cli.out, "Credentials match student %d (%s / %s)\n", student.ID, student.NameFr, student.Name)
	return nil
}

func (cli *commandLine) backupExport(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("backup export")
	output := cmd.String("output", "", "Output file path, stdout when empty")
	if err := cmd.Parse(args); err != nil {
		return err
	}

	if *output == "" {
		return cli.backups.WriteTo(ctx, cli.out)
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *output, err)
	}
	if err := cli.backups.WriteTo(ctx, file); err != nil {
		file.Close()
		os.Remove(*output)
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}

	fmt.Fprintf(cli.out, "Backup written to %s\n", *output)
	return nil
}

func (cli *commandLine) backupImport(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("backup import")
	input := cmd.String("input", "", "Backup file to restore (required)")
	clear := cmd.Bool("clear", false, "Remove entries missing from the backup (destructive)")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*input) == "" {
		cmd.Usage()
		return errHelp
	}

	file, err := os.Open(*input)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *input, err)
	}
	defer file.Close()

	backup, err := services.ReadBackup(file)
	if err != nil {
		return err
	}

	result, err := cli.backups.Import(ctx, backup, *clear)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "Imported %d entries, removed %d\n", result.Imported, result.Removed)
	return nil
}
