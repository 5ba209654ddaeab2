package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/echoterm/infra/auth"
	"github.com/CrestNiraj12/echoterm/infra/config"
	"github.com/CrestNiraj12/echoterm/infra/echo"
	"github.com/CrestNiraj12/echoterm/infra/editor"
	"github.com/CrestNiraj12/echoterm/infra/logging"
	"github.com/CrestNiraj12/echoterm/infra/sandbox"
	"github.com/CrestNiraj12/echoterm/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	defaultSandboxAddr = "127.0.0.1:8000"
	// offlineBaseURL never leaves the process; the sandbox transport ignores the host.
	offlineBaseURL = "http://sandbox.local/api"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliOffline
	cliSandbox
	cliVersion
	cliHelp
	cliInvalid
)

type cliArgs struct {
	mode cliMode
	addr string // sandbox listen address
}

func parseCLIArgs(args []string) (cliArgs, string) {
	if len(args) == 0 {
		return cliArgs{mode: cliRun}, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliArgs{mode: cliVersion}, ""
	case "--help", "-h", "help":
		return cliArgs{mode: cliHelp}, ""
	case "--offline":
		return cliArgs{mode: cliOffline}, ""
	case "sandbox":
		return parseSandboxArgs(args[1:])
	default:
		return cliArgs{mode: cliInvalid}, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func parseSandboxArgs(args []string) (cliArgs, string) {
	out := cliArgs{mode: cliSandbox, addr: defaultSandboxAddr}
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--addr" && i+1 < len(args):
			out.addr = args[i+1]
			i++
		case strings.HasPrefix(args[i], "--addr="):
			out.addr = strings.TrimPrefix(args[i], "--addr=")
		default:
			return cliArgs{mode: cliInvalid}, fmt.Sprintf("unexpected sandbox argument: %s", args[i])
		}
	}
	if out.addr == "" {
		return cliArgs{mode: cliInvalid}, "sandbox: empty --addr"
	}
	return out, ""
}

func usage() string {
	return `Usage:
  echoterm [--version|-v] [--help|-h]
  echoterm --offline                 browse a seeded in-memory sandbox
  echoterm sandbox [--addr ADDR]     serve the sandbox API (default ` + defaultSandboxAddr + `)`
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		if rev := strings.TrimSpace(settings["vcs.revision"]); rev != "" {
			c = rev[:min(len(rev), 12)]
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	args, msg := parseCLIArgs(os.Args[1:])
	switch args.mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("echoterm %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	case cliSandbox:
		if err := runSandbox(args.addr); err != nil {
			fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(args.mode == cliOffline); err != nil {
		fmt.Fprintf(os.Stderr, "echoterm: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(offline bool) error {
	// 1. Load config from environment.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	// 2. Build infrastructure.
	client := newClient(cfg, offline, logger)

	// 3. Wire root TUI model. Services are concrete types satisfying app.*.
	rootModel := tui.NewApp(tui.Deps{
		Posts:    echo.NewPostService(client),
		Comments: echo.NewCommentService(client),
		Likes:    echo.NewLikeService(client),
		Account:  echo.NewAccountService(client),
		Editor:   editor.NewEnvEditor(),
		Log:      logging.Component(logger, "tui"),
		SignedIn: client.HasCredential(),
	})

	logger.Info().Str("api", cfg.APIURL).Bool("offline", offline).Bool("signed_in", client.HasCredential()).Msg("starting")

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newClient builds the API client. Offline, requests are served in-process
// by a seeded sandbox as its first user.
func newClient(cfg config.Config, offline bool, logger zerolog.Logger) *echo.Client {
	httpLog := logging.Component(logger, "http")
	if offline {
		srv := sandbox.NewServer(sandbox.NewSeeded(), logging.Component(logger, "sandbox"))
		return echo.NewClient(offlineBaseURL, auth.StaticToken(sandbox.AliceToken),
			echo.WithTransport(srv.Transport()),
			echo.WithLogger(httpLog),
		)
	}
	tokens := auth.ChainTokenProvider{
		auth.NewEnvTokenProvider("ECHOTERM_ACCESS_TOKEN"),
		auth.NewFileTokenProvider(cfg.TokenPath),
	}
	return echo.NewClient(cfg.APIURL, tokens,
		echo.WithTimeout(cfg.Timeout),
		echo.WithLogger(httpLog),
	)
}

func runSandbox(addr string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	srv := sandbox.NewServer(sandbox.NewSeeded(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(addr) }()

	fmt.Fprintf(os.Stderr, "sandbox tokens: %s (alice), %s (bob)\n", sandbox.AliceToken, sandbox.BobToken)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		if err := srv.Shutdown(); err != nil {
			return err
		}
		return <-errCh
	}
}
