package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dhrions/ha-public-transports/config"
	"github.com/dhrions/ha-public-transports/discovery"
	"github.com/dhrions/ha-public-transports/formatter"
	"github.com/dhrions/ha-public-transports/internal"
	"github.com/dhrions/ha-public-transports/registry"
	"github.com/dhrions/ha-public-transports/server"
	"github.com/dhrions/ha-public-transports/store"
	"github.com/dhrions/ha-public-transports/wizard"
)

func main() {
	mode := flag.String("mode", "wizard", "wizard|serve|discover|entries")
	configPath := flag.String("config", "", "config file (default: PT_CONFIG, config.yml)")
	format := flag.String("format", "json", "json|yaml")
	company := flag.String("company", "", "transit company for -mode=discover")
	token := flag.String("token", "", "API token for -mode=discover (default: PT_API_TOKEN)")
	debug := flag.Bool("debug", false, "enable diagnostic logging")
	flag.Parse()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	internal.InitLogging(cfg.Log.Debug || *debug)

	reg, err := registry.Load(cfg.Registry.Path)
	if err != nil {
		log.Fatalf("registry: %v", err)
	}
	client := discovery.NewClient(cfg.DiscoveryTimeout())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "wizard":
		st := openStore(cfg)
		defer st.Close()
		p := newPrompter(os.Stdin, os.Stdout, cfg.APIToken, reg.Cities())
		sel, err := p.run(ctx, wizard.New(reg, client))
		if err != nil {
			log.Fatalf("wizard: %v", err)
		}
		entry, err := st.Save(ctx, sel)
		if err != nil {
			log.Fatalf("store: %v", err)
		}
		fmt.Println()
		printFormatted(entry.Redacted(), *format)
	case "serve":
		st := openStore(cfg)
		defer st.Close()
		srv := server.New(reg, client, st)
		srv.Start(cfg.Server.Port)
		server.HandleGracefulShutdown(srv)
	case "discover":
		d, ok := reg.LookupOperator(*company)
		if !ok {
			log.Fatalf("unknown transit company %q", *company)
		}
		cred := *token
		if cred == "" {
			cred = cfg.APIToken
		}
		var credential *string
		if d.RequiresToken {
			if cred == "" {
				log.Fatalf("%s requires an API token (-token or PT_API_TOKEN)", d.Name)
			}
			credential = &cred
		}
		printFormatted(client.DiscoverStops(ctx, d, credential), *format)
	case "entries":
		st := openStore(cfg)
		defer st.Close()
		entries, err := st.List(ctx)
		if err != nil {
			log.Fatalf("store: %v", err)
		}
		redacted := make([]store.Entry, 0, len(entries))
		for _, e := range entries {
			redacted = append(redacted, e.Redacted())
		}
		printFormatted(redacted, *format)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func openStore(cfg *config.AppConfig) *store.Store {
	st, err := store.Open(cfg.Store.DSN)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	return st
}

func printFormatted(v any, format string) {
	buf, err := formatter.Format(v, format)
	if err != nil {
		log.Fatalf("format: %v", err)
	}
	fmt.Print(string(buf))
}
