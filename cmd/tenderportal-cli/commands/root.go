package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tenderportal-backend/lib/companycache"
	"tenderportal-backend/lib/configutil"
	configlibsql "tenderportal-backend/lib/configutil/libsql"
	"tenderportal-backend/lib/restyutil"
	"tenderportal-backend/lib/scrapers/tenderportal"
	"tenderportal-backend/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

type LoginConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Config struct {
	BaseUrl string              `json:"base_url"`
	Cache   configlibsql.Struct `json:"cache"`
	Login   LoginConfig         `json:"login"`
}

var debugHttp *bool

var rootCmd = &cobra.Command{
	Use:   "tenderportal-cli",
	Short: "tenderportal-cli drives the portal scraper against a live portal.",
}

func init() {
	debugHttp = rootCmd.PersistentFlags().Bool(
		"debug-http", false,
		"Dump every request/response pair to .dev/resty/tenderportal.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func newClient(cfg Config) *tenderportal.Client {
	if *debugHttp {
		tenderportal.SetRestyInstrumentOutput(
			restyutil.NewFilesystemOutput(".dev/resty/tenderportal"),
		)
	}
	client, err := tenderportal.NewClient(tenderportal.ClientOptions{BaseUrl: cfg.BaseUrl})
	if err != nil {
		serviceutil.Fatal("failed to initialize portal client", err)
	}
	return client
}

func openCache(cfg Config) (companycache.Store, func()) {
	db, err := cfg.Cache.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open slug cache", err)
	}
	_, err = db.Exec(companycache.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply slug cache schema", err)
	}
	return companycache.NewStore(db), func() { db.Close() }
}

// resolveCompany answers from the slug cache when it can; a miss (or
// --refresh) costs two redirect round-trips against the portal.
func resolveCompany(
	ctx context.Context,
	client *tenderportal.Client,
	store companycache.Store,
	slug string,
	refresh bool,
) companycache.Entry {
	if !refresh {
		entry, err := store.Get(ctx, slug)
		if err == nil {
			return entry
		}
		if !errors.Is(err, companycache.ErrNotCached) {
			serviceutil.Fatal("failed to read slug cache", err)
		}
	}

	companyId, err := client.CompanyIDFromSlug(ctx, slug)
	if err != nil {
		serviceutil.Fatal("failed to resolve company id", err)
	}
	orgId, err := client.ProcurementOrgIDFromSlug(ctx, slug)
	if err != nil {
		serviceutil.Fatal("failed to resolve procurement org id", err)
	}

	entry := companycache.Entry{
		Slug:             slug,
		CompanyId:        companyId,
		ProcurementOrgId: orgId,
	}
	err = store.Put(ctx, entry)
	if err != nil {
		serviceutil.Fatal("failed to update slug cache", err)
	}
	return entry
}

func loginSession(
	ctx context.Context,
	cfg Config,
	client *tenderportal.Client,
	companyId int,
	slug string,
) tenderportal.AuthenticatedSession {
	anon, err := client.GetSession(ctx, slug)
	if err != nil {
		serviceutil.Fatal("failed to acquire session", err)
	}
	authed, err := client.Login(ctx, companyId, cfg.Login.Username, cfg.Login.Password, anon)
	if err != nil {
		serviceutil.Fatal("failed to login", err)
	}
	return authed
}
