// Command seina-cli is a maintenance tool for the bot's datastore. It works
// on the store file directly, so run it while the bot is stopped.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"seina-bot/datastore"
	"seina-bot/internal/storage"
	"seina-bot/internal/version"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "seina-cli",
		Usage:   "inspect and maintain the bot datastore",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Usage:   "path to the datastore file",
				Value:   "data/datastore.json",
				EnvVars: []string{"STORAGE_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "keys",
				Usage: "list record keys",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Usage: "only keys with this prefix"},
				},
				Action: func(c *cli.Context) error {
					ds, err := openStore(c)
					if err != nil {
						return err
					}
					defer ds.Close()

					for _, k := range ds.Keys(c.String("prefix")) {
						fmt.Println(k)
					}
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "print one record as JSON",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: get <key>", 2)
					}
					ds, err := openStore(c)
					if err != nil {
						return err
					}
					defer ds.Close()

					var raw json.RawMessage
					ok, err := ds.Get(c.Args().First(), &raw)
					if err != nil {
						return err
					}
					if !ok {
						return cli.Exit("no such key", 1)
					}
					pretty, err := json.MarshalIndent(raw, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(pretty))
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "dump the whole store as one JSON object",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "write to a file instead of stdout"},
				},
				Action: func(c *cli.Context) error {
					ds, err := openStore(c)
					if err != nil {
						return err
					}
					defer ds.Close()

					dump := make(map[string]json.RawMessage)
					for _, k := range ds.Keys("") {
						var raw json.RawMessage
						if _, err := ds.Get(k, &raw); err != nil {
							return err
						}
						dump[k] = raw
					}
					data, err := json.MarshalIndent(dump, "", "  ")
					if err != nil {
						return err
					}
					if out := c.String("out"); out != "" {
						return os.WriteFile(out, data, 0644)
					}
					fmt.Println(string(data))
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "remove one record",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: delete <key>", 2)
					}
					ds, err := openStore(c)
					if err != nil {
						return err
					}
					defer ds.Close()

					if err := ds.Delete(c.Args().First()); err != nil {
						return err
					}
					return ds.Save()
				},
			},
			{
				Name:  "prune",
				Usage: "drop expired records (battle cooldowns)",
				Action: func(c *cli.Context) error {
					store, err := storage.NewWithConfig(storeConfig(c))
					if err != nil {
						return err
					}
					defer store.Close()

					n, err := store.PruneBattleCooldowns(time.Now())
					if err != nil {
						return err
					}
					fmt.Printf("pruned %d expired cooldown(s)\n", n)
					return store.Save()
				},
			},
			{
				Name:  "stats",
				Usage: "show store diagnostics",
				Action: func(c *cli.Context) error {
					ds, err := openStore(c)
					if err != nil {
						return err
					}
					defer ds.Close()

					st := ds.Stats()
					fmt.Printf("file:       %s\n", st.FilePath)
					fmt.Printf("keys:       %d\n", st.Keys)
					fmt.Printf("last saved: %s\n", st.LastSaved.Format(time.RFC3339))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "seina-cli:", err)
		os.Exit(1)
	}
}

// storeConfig opens without autosave or backups; the CLI saves explicitly.
func storeConfig(c *cli.Context) *datastore.Config {
	return &datastore.Config{
		FilePath: c.String("store"),
		Logger:   zerolog.Nop(),
	}
}

func openStore(c *cli.Context) (*datastore.Store, error) {
	return datastore.NewWithConfig(storeConfig(c))
}
