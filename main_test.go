package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/echoterm/infra/config"
	"github.com/CrestNiraj12/echoterm/infra/echo"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		addr string
		msg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "offline", args: []string{"--offline"}, mode: cliOffline},
		{name: "sandbox default addr", args: []string{"sandbox"}, mode: cliSandbox, addr: defaultSandboxAddr},
		{name: "sandbox addr", args: []string{"sandbox", "--addr", ":9000"}, mode: cliSandbox, addr: ":9000"},
		{name: "sandbox addr equals", args: []string{"sandbox", "--addr=:9001"}, mode: cliSandbox, addr: ":9001"},
		{name: "sandbox missing value", args: []string{"sandbox", "--addr"}, mode: cliInvalid, msg: "unexpected sandbox argument: --addr"},
		{name: "sandbox empty value", args: []string{"sandbox", "--addr="}, mode: cliInvalid, msg: "sandbox: empty --addr"},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "too many args", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, msg := parseCLIArgs(tc.args)
			if got.mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", got.mode, tc.mode)
			}
			if tc.addr != "" && got.addr != tc.addr {
				t.Fatalf("addr mismatch: got %q want %q", got.addr, tc.addr)
			}
			if tc.msg != "" && msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", msg, tc.msg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", map[string]string{
		"vcs.revision": "0123456789abcdef",
		"vcs.time":     "2025-01-01T00:00:00Z",
	})
	if v != "v1.2.3" || c != "0123456789ab" || d != "2025-01-01T00:00:00Z" {
		t.Fatalf("unexpected version info: %s %s %s", v, c, d)
	}

	v, c, d = resolveVersionInfo("v9", "abc", "today", "(devel)", nil)
	if v != "v9" || c != "abc" || d != "today" {
		t.Fatalf("explicit ldflags values must win: %s %s %s", v, c, d)
	}
}

func TestNewClient_OfflineServesSeededFeed(t *testing.T) {
	c := newClient(config.Config{}, true, zerolog.Nop())
	if !c.HasCredential() {
		t.Fatalf("offline client should be signed in")
	}
	posts, err := echo.NewPostService(c).FetchPosts(context.Background())
	if err != nil {
		t.Fatalf("offline feed: %v", err)
	}
	if len(posts) == 0 {
		t.Fatalf("seeded sandbox should have posts")
	}
	me, err := echo.NewAccountService(c).Me(context.Background())
	if err != nil || me.Username != "alice" {
		t.Fatalf("offline user should be alice, got %+v (%v)", me, err)
	}
}
