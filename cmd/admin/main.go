package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"campusvote/contexts/election/poll-registry/application/commands"
	registrycommands "campusvote/contexts/election/voter-registry/application/commands"
	"campusvote/contexts/election/voter-registry/application/roster"
	authapp "campusvote/contexts/identity-access/auth-gate/application"
	"campusvote/internal/app/bootstrap"
)

// Maintenance CLI. Every subcommand goes through the same use cases as
// the HTTP surface, so validation and uniqueness rules are identical.
//
// Usage:
//
//	admin seed
//	admin reset
//	admin create-admin -email ... -name ... -password ...
//	admin import -file roster.csv
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	app, err := bootstrap.BuildAdmin()
	if err != nil {
		log.Fatalf("bootstrap admin failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("admin shutdown close failed: %v", err)
		}
	}()

	ctx := context.Background()
	switch os.Args[1] {
	case "seed":
		err = runSeed(ctx, app)
	case "reset":
		err = app.ResetData(ctx)
	case "create-admin":
		err = runCreateAdmin(ctx, app, os.Args[2:])
	case "import":
		err = runImport(ctx, app, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("admin %s failed: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <seed|reset|create-admin|import> [flags]")
}

func runSeed(ctx context.Context, app *bootstrap.AdminApp) error {
	rows := []registrycommands.RosterRow{
		{RowNum: 2, Sheet: "seed", RegNo: "21ADS001", Name: "Asha Venkat", Email: "asha@example.edu", Year: "2", Section: "A", Department: "ADS"},
		{RowNum: 3, Sheet: "seed", RegNo: "21ADS002", Name: "Bilal Rahman", Email: "bilal@example.edu", Year: "2", Section: "A", Department: "ADS"},
		{RowNum: 4, Sheet: "seed", RegNo: "21ADS003", Name: "Chitra Devi", Email: "chitra@example.edu", Year: "2", Section: "B", Department: "ADS"},
		{RowNum: 5, Sheet: "seed", RegNo: "20ITR001", Name: "Dinesh Kumar", Email: "dinesh@example.edu", Year: "3", Section: "A", Department: "IT"},
		{RowNum: 6, Sheet: "seed", RegNo: "20ITR002", Name: "Esther Paul", Email: "esther@example.edu", Year: "3", Section: "A", Department: "IT"},
	}
	created, err := app.Voters.Voters.BulkCreateVoters(ctx, rows)
	if err != nil {
		return err
	}
	log.Printf("seeded %d voters", created.Count)

	poll, err := app.Polls.Polls.CreatePoll(ctx, commands.CreatePollCommand{
		Title:            "Class Representative 2026",
		Description:      "Choose the class representative for the coming year.",
		TargetYear:       "2",
		TargetSection:    "ALL",
		TargetDepartment: "ADS",
		Candidates:       []string{"Asha Venkat", "Bilal Rahman"},
		CreatedBy:        "seed",
	})
	if err != nil {
		return err
	}
	if _, err := app.Polls.Polls.TogglePoll(ctx, poll.ID, true); err != nil {
		return err
	}
	log.Printf("seeded poll %q (%s)", poll.Title, poll.ID)
	return nil
}

func runCreateAdmin(ctx context.Context, app *bootstrap.AdminApp, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	name := fs.String("name", "", "admin display name")
	password := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	admin, err := app.Auth.Auth.CreateAdmin(ctx, authapp.CreateAdminCommand{
		Email:    *email,
		Name:     *name,
		Password: *password,
	})
	if err != nil {
		return err
	}
	log.Printf("created admin %s (%s)", admin.Email, admin.ID)
	return nil
}

func runImport(ctx context.Context, app *bootstrap.AdminApp, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "CSV roster with a header row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("import: -file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("import: %s has no data rows", *file)
	}

	rows := roster.MapSheet(records[0], records[1:], filepath.Base(*file))
	created, err := app.Voters.Voters.BulkCreateVoters(ctx, rows)
	if err != nil {
		return err
	}
	log.Printf("imported %d voters from %d sheet(s)", created.Count, created.SheetsProcessed)
	return nil
}
