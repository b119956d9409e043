package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tkerr/ab3gy-dxentity/internal/config"
	"github.com/tkerr/ab3gy-dxentity/internal/cty"
	"github.com/tkerr/ab3gy-dxentity/internal/db"
	"github.com/tkerr/ab3gy-dxentity/internal/dxcc"
	"github.com/tkerr/ab3gy-dxentity/internal/logging"
	"github.com/tkerr/ab3gy-dxentity/internal/store"
	"github.com/tkerr/ab3gy-dxentity/version"
)

func usage() {
	fmt.Fprintf(os.Stderr, `%s %s

Usage: dxentity <command> [args]

Data file commands (CTY_FILE, DXCC_CSV, CUSTOM_ALIASES env vars):
  lookup [--dxcc|--waedc] CALL...  resolve callsigns to DXCC entities
  check                            run data sanity checks
  version                          print the data set version
  prefixes                         dump the prefix tables
  callsigns                        dump the literal callsign table
  watch                            resolve callsigns from stdin, rebuilding
                                   the index when the data files change

Database commands (DATA_DIR, DATABASE_FILE env vars):
  db-init                          create the database schema
  db-drop                          drop the database tables
  db-import                        parse the data files and reload the database
  db-custom FILE                   import custom alias lines into the database
  db-dump                          dump the database contents
  db-version                       print the stored data set version
  db-lookup CALL...                resolve callsigns from a replayed database index
`, version.ProjectName, version.ProjectVersion)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	os.Exit(RunApplication(ctx, os.Args[1:]))
}

// RunApplication is the testable entry point; it returns the process exit
// code.
func RunApplication(ctx context.Context, args []string) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Crit("failed to load configuration: %v", err)
		return 1
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	if len(args) == 0 {
		usage()
		return 2
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "lookup":
		return cmdLookup(cfg, rest)
	case "check":
		return cmdCheck(cfg)
	case "version":
		return cmdVersion(cfg)
	case "prefixes":
		return cmdDump(cfg, false)
	case "callsigns":
		return cmdDump(cfg, true)
	case "watch":
		return cmdWatch(ctx, cfg)
	case "db-init":
		return cmdDBInit(cfg)
	case "db-drop":
		return cmdDBDrop(cfg)
	case "db-import":
		return cmdDBImport(ctx, cfg)
	case "db-custom":
		return cmdDBCustom(ctx, cfg, rest)
	case "db-dump":
		return cmdDBDump(ctx, cfg)
	case "db-version":
		return cmdDBVersion(ctx, cfg)
	case "db-lookup":
		return cmdDBLookup(ctx, cfg, rest)
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		logging.Error("unknown command %q", cmd)
		usage()
		return 2
	}
}

// entityCSVPath returns the configured canonical CSV path, or "" when the
// file does not exist. The CSV is supplementary; lookups still work without
// DXCC numbers.
func entityCSVPath(cfg *config.Config) string {
	if cfg.EntityCSV == "" {
		return ""
	}
	if _, err := os.Stat(cfg.EntityCSV); err != nil {
		logging.Warn("entity CSV %s not found, DXCC numbers will be absent", cfg.EntityCSV)
		return ""
	}
	return cfg.EntityCSV
}

// buildIndex parses the configured data files and applies the custom alias
// file when one is configured.
func buildIndex(cfg *config.Config) (*dxcc.Index, error) {
	ix, _, err := dxcc.BuildFromFiles(cfg.CtyFile, entityCSVPath(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.CustomAliasFile != "" {
		if err := applyCustomAliases(ix, cfg.CustomAliasFile); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

func applyCustomAliases(ix *dxcc.Index, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open custom alias file %s: %w", path, err)
	}
	defer f.Close()

	p := cty.NewParser(nil)
	added := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n, err := ix.AddAliasLine(p, line)
		if err != nil {
			logging.Warn("custom alias line skipped: %v", err)
			continue
		}
		added += n
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read custom alias file %s: %w", path, err)
	}
	logging.Info("applied %d custom alias records from %s", added, path)
	return nil
}

func openStore(cfg *config.Config) (*store.Store, *db.SQLiteClient, error) {
	client, err := db.NewSQLiteClient(cfg.DataDir, cfg.DatabaseFile)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(client)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return s, client, nil
}

func parseHint(args []string) (dxcc.AwardHint, []string) {
	if len(args) > 0 {
		switch args[0] {
		case "--dxcc":
			return dxcc.HintDXCC, args[1:]
		case "--waedc":
			return dxcc.HintWAEDC, args[1:]
		}
	}
	return dxcc.HintNone, args
}

func printResolution(call string, recs []cty.Record) {
	if len(recs) == 0 {
		fmt.Printf("%-12s no entity\n", call+":")
		return
	}
	r := recs[0]
	flag := dxcc.Flag(r.DXCC)
	if flag != "" {
		flag = " " + flag
	}
	fmt.Printf("%-12s %s (DXCC %d) %s CQ %d ITU %d%s\n",
		call+":", r.Country, r.DXCC, r.Continent, r.CQZone, r.ITUZone, flag)
	for _, extra := range recs[1:] {
		note := ""
		if extra.WAEDC {
			note = " [WAE only]"
		}
		fmt.Printf("%-12s also %s (DXCC %d)%s\n", "", extra.Country, extra.DXCC, note)
	}
}

func cmdLookup(cfg *config.Config, args []string) int {
	hint, calls := parseHint(args)
	if len(calls) == 0 {
		logging.Error("lookup: no callsigns given")
		return 2
	}
	ix, err := buildIndex(cfg)
	if err != nil {
		logging.Crit("failed to build index: %v", err)
		return 1
	}
	for _, call := range calls {
		printResolution(strings.ToUpper(call), ix.ResolveHint(call, hint))
	}
	return 0
}

func cmdCheck(cfg *config.Config) int {
	ix, err := buildIndex(cfg)
	if err != nil {
		logging.Crit("failed to build index: %v", err)
		return 1
	}
	rep := ix.Validate()
	for _, p := range rep.DuplicatePriorities {
		fmt.Printf("duplicate entity priority: %d\n", p)
	}
	for _, c := range rep.MissingDXCC {
		fmt.Printf("no DXCC number for: %s\n", c)
	}
	for _, c := range rep.CallsignCollisions {
		fmt.Printf("callsign in multiple countries: %s\n", c)
	}
	if !rep.Clean() {
		return 1
	}
	fmt.Println("data checks passed")
	return 0
}

func cmdVersion(cfg *config.Config) int {
	ix, err := buildIndex(cfg)
	if err != nil {
		logging.Crit("failed to build index: %v", err)
		return 1
	}
	fmt.Println(ix.Version())
	return 0
}

func cmdDump(cfg *config.Config, callsigns bool) int {
	ix, err := buildIndex(cfg)
	if err != nil {
		logging.Crit("failed to build index: %v", err)
		return 1
	}
	recs := ix.Prefixes()
	if callsigns {
		recs = ix.Callsigns()
	}
	for _, r := range recs {
		fmt.Printf("%-8s %-10s prio=%-4d %s\n", r.Kind, r.Alias, r.Priority, r.Country)
	}
	return 0
}

func cmdWatch(ctx context.Context, cfg *config.Config) int {
	r, err := dxcc.NewReloader(cfg.CtyFile, entityCSVPath(cfg))
	if err != nil {
		logging.Crit("failed to build index: %v", err)
		return 1
	}
	if err := r.StartWatcher(ctx); err != nil {
		logging.Crit("failed to start watcher: %v", err)
		return 1
	}
	defer r.StopWatcher()

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			logging.Notice("shutting down")
			return 0
		case line, ok := <-lines:
			if !ok {
				return 0
			}
			call := strings.ToUpper(strings.TrimSpace(line))
			if call == "" {
				continue
			}
			printResolution(call, r.Index().Resolve(call))
		}
	}
}

func cmdDBInit(cfg *config.Config) int {
	_, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to initialize database: %v", err)
		return 1
	}
	defer client.Close()
	logging.Notice("database initialized at %s", client.FilePath())
	return 0
}

func cmdDBDrop(cfg *config.Config) int {
	s, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to open database: %v", err)
		return 1
	}
	defer client.Close()
	if err := s.DropTables(); err != nil {
		logging.Crit("failed to drop tables: %v", err)
		return 1
	}
	logging.Notice("entity tables dropped")
	return 0
}

func cmdDBImport(ctx context.Context, cfg *config.Config) int {
	var table *cty.EntityTable
	if path := entityCSVPath(cfg); path != "" {
		t, err := cty.LoadEntityCSV(path)
		if err != nil {
			logging.Crit("failed to load entity CSV: %v", err)
			return 1
		}
		table = t
	}
	p := cty.NewParser(table)
	recs, err := p.ParseFile(cfg.CtyFile)
	if err != nil {
		logging.Crit("failed to parse %s: %v", cfg.CtyFile, err)
		return 1
	}
	st := p.Stats()
	logging.Notice("parsed %d records (%d lines, %d errors)", st.Records, st.Lines, st.Errors)

	s, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to open database: %v", err)
		return 1
	}
	defer client.Close()

	good, bad, err := s.ReplaceRecords(ctx, recs)
	if err != nil {
		logging.Crit("import failed: %v", err)
		return 1
	}
	fmt.Printf("imported %d rows, %d skipped\n", good, bad)
	return 0
}

func cmdDBCustom(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) != 1 {
		logging.Error("db-custom: exactly one alias file expected")
		return 2
	}
	f, err := os.Open(args[0])
	if err != nil {
		logging.Crit("failed to open alias file: %v", err)
		return 1
	}
	defer f.Close()

	s, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to open database: %v", err)
		return 1
	}
	defer client.Close()

	p := cty.NewParser(nil)
	added := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n, err := s.ImportAliasLine(ctx, p, line)
		if err != nil {
			logging.Warn("alias line skipped: %v", err)
			continue
		}
		added += n
	}
	if err := sc.Err(); err != nil {
		logging.Crit("failed to read alias file: %v", err)
		return 1
	}
	fmt.Printf("added %d custom alias rows\n", added)
	return 0
}

func cmdDBDump(ctx context.Context, cfg *config.Config) int {
	s, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to open database: %v", err)
		return 1
	}
	defer client.Close()

	recs, err := s.DumpAll(ctx)
	if err != nil {
		logging.Crit("dump failed: %v", err)
		return 1
	}
	for _, r := range recs {
		fmt.Printf("%-8s %-10s prio=%-4d %s\n", r.Kind, r.Alias, r.Priority, r.Country)
	}
	return 0
}

func cmdDBVersion(ctx context.Context, cfg *config.Config) int {
	s, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to open database: %v", err)
		return 1
	}
	defer client.Close()

	v, err := s.Version(ctx)
	if err != nil {
		logging.Crit("version lookup failed: %v", err)
		return 1
	}
	fmt.Println(v)
	return 0
}

func cmdDBLookup(ctx context.Context, cfg *config.Config, args []string) int {
	hint, calls := parseHint(args)
	if len(calls) == 0 {
		logging.Error("db-lookup: no callsigns given")
		return 2
	}

	s, client, err := openStore(cfg)
	if err != nil {
		logging.Crit("failed to open database: %v", err)
		return 1
	}
	defer client.Close()

	ix, err := s.ReplayIndex(ctx)
	if err != nil {
		logging.Crit("failed to replay index: %v", err)
		return 1
	}
	for _, call := range calls {
		printResolution(strings.ToUpper(call), ix.ResolveHint(call, hint))
	}
	return 0
}
