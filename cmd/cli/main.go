package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/dacarsoft/finance-bot/internal/logger"
	"github.com/dacarsoft/finance-bot/internal/parser"
	"github.com/dacarsoft/finance-bot/internal/sheets"
)

// cli commands / args available
var cli struct {
	Credentials string `help:"Path to the service-account credentials file." default:"credentials.json" env:"SHEETS_CREDENTIALS_FILE"`
	Spreadsheet string `help:"Spreadsheet ID." env:"SPREADSHEET_ID"`
	Debug       bool   `help:"Verbose logging."`

	Parse      parseCmd      `cmd:"" help:"Classify one message and print the outcome."`
	InitSheets initSheetsCmd `cmd:"" name:"init-sheets" help:"Create or repair the destination sheets."`
	Capital    capitalCmd    `cmd:"" help:"List capital movement rows."`
	Examples   examplesCmd   `cmd:"" help:"Print the example message corpus."`
}

// globals carries shared state into command Run methods.
type globals struct {
	log zerolog.Logger
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("finance-bot-cli"),
		kong.Description("Maintenance tooling for the Dacarsoft finance bot."),
	)
	g := &globals{log: logger.New(cli.Debug)}
	err := ctx.Run(g)
	ctx.FatalIfErrorf(err)
}

func openSheets(ctx context.Context, g *globals) (*sheets.Service, error) {
	backend, err := sheets.NewGoogleBackend(ctx, cli.Credentials, cli.Spreadsheet)
	if err != nil {
		return nil, err
	}
	return sheets.NewService(backend, g.log), nil
}

type parseCmd struct {
	Message string `arg:"" help:"Spanish finance message to classify."`
	Save    bool   `help:"Append the resulting record to the spreadsheet."`
	Model   string `help:"Gemini model name." default:"gemini-2.5-flash"`
}

func (c *parseCmd) Run(g *globals) error {
	ctx := context.Background()

	model, err := parser.NewGeminiModel(ctx, c.Model)
	if err != nil {
		return err
	}
	p := parser.New(model, g.log)

	res := p.Parse(ctx, c.Message)
	switch {
	case res.Capital != nil:
		cm := res.Capital
		fmt.Printf("capital movement: kind=%s principal=%s institution=%s estado=%s\n",
			cm.Kind, cm.Principal, cm.Institution, cm.Status)
	case res.Transaction != nil:
		tx := res.Transaction
		fmt.Printf("transaction: kind=%s amount=%s category=%s\n",
			tx.Kind, tx.Amount, tx.Category)
	default:
		fmt.Println("no result")
		return nil
	}

	if !c.Save {
		return nil
	}
	svc, err := openSheets(ctx, g)
	if err != nil {
		return err
	}
	if res.Capital != nil {
		return svc.SaveCapitalMovement(ctx, res.Capital)
	}
	return svc.SaveTransaction(ctx, res.Transaction)
}

type initSheetsCmd struct{}

func (c *initSheetsCmd) Run(g *globals) error {
	ctx := context.Background()
	svc, err := openSheets(ctx, g)
	if err != nil {
		return err
	}
	if err := svc.Initialize(ctx); err != nil {
		return err
	}
	fmt.Println("sheets ok")
	return nil
}

type capitalCmd struct {
	Active bool `help:"Only active (non-withdrawn) rows."`
}

func (c *capitalCmd) Run(g *globals) error {
	ctx := context.Background()
	svc, err := openSheets(ctx, g)
	if err != nil {
		return err
	}
	rows, err := svc.CapitalMovements(ctx, c.Active)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Println(strings.Join(row, "\t"))
	}
	return nil
}

type examplesCmd struct{}

func (c *examplesCmd) Run(g *globals) error {
	for _, msg := range parser.ExampleMessages() {
		fmt.Println(msg)
	}
	return nil
}
