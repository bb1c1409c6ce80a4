// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// campus-nexus is the query and transaction core behind a role-aware
// campus assistant. This binary wires the engines together and exposes
// them through a small stdin loop standing in for the LLM
// orchestrator: log in, run queries, clock in and out.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/campus-nexus/internal/audit"
	"github.com/jeranaias/campus-nexus/internal/config"
	"github.com/jeranaias/campus-nexus/internal/dataset"
	"github.com/jeranaias/campus-nexus/internal/model"
	"github.com/jeranaias/campus-nexus/internal/query"
	"github.com/jeranaias/campus-nexus/internal/seed"
	"github.com/jeranaias/campus-nexus/internal/session"
	"github.com/jeranaias/campus-nexus/internal/storage"
	"github.com/jeranaias/campus-nexus/internal/tools"
	"github.com/jeranaias/campus-nexus/internal/transaction"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "campus-nexus: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(filepath.Join(config.DefaultConfig().DataDir, config.DefaultFileName))
	if err != nil {
		return err
	}

	// =========================================================================
	// WIRING
	// =========================================================================

	store := dataset.NewStore(seed.Generate(seed.Options{
		Seed:         cfg.Seed.Seed,
		StudentCount: cfg.Seed.StudentCount,
		GradesEach:   cfg.Seed.GradesPerStudent,
	}))

	var auditor *audit.Logger
	if cfg.Audit.Enabled {
		auditor = audit.NewLogger(cfg.AuditLogPath(),
			audit.WithMaxFileSize(int64(cfg.Audit.MaxFileSizeMB)*1024*1024))
	}

	txOpts := []transaction.Option{}
	var journal *storage.DB
	if cfg.Storage.Enabled {
		journal, err = storage.Open(cfg.StoragePath())
		if err != nil {
			return err
		}
		defer journal.Close()

		// Restore journaled clock-ins over the fresh seed.
		records, err := journal.LoadAttendance()
		if err != nil {
			return err
		}
		if len(records) > 0 {
			store.Update(func(d *model.Dataset) error {
				d.Attendance = records
				return nil
			})
		}
		txOpts = append(txOpts, transaction.WithJournal(journal))
	}

	queries := query.NewEngine(store, auditor)
	writes := transaction.NewEngine(store, auditor, txOpts...)
	executor := tools.NewExecutor(tools.DefaultRegistry(), queries, writes,
		tools.WithRateLimit(cfg.Tools.RateLimitPerSec, cfg.Tools.RateLimitBurst))
	sessions := session.NewManager(session.WithTimeout(cfg.SessionTimeout()))

	// =========================================================================
	// DEMO LOOP
	// =========================================================================

	fmt.Println("campus-nexus — type 'help' for commands")
	var current *model.UserSession

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", string(model.RoleOf(current)))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "help":
			fmt.Println(`commands:
  login <role> <identifier> <password>   role: student|lecturer|employee|admin
  logout
  sql <query>                            e.g. sql SELECT * FROM courses
  clockin | clockout
  quit`)

		case "login":
			user, msg := login(store, sessions, rest)
			if user == nil {
				fmt.Println(msg)
				continue
			}
			current = user
			executor.BindCaller(current)
			fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)

		case "logout":
			if current != nil {
				sessions.Logout(current.ID)
			}
			current = nil
			executor.BindCaller(nil)
			fmt.Println("logged out")

		case "sql":
			printResult(executor.Execute(context.Background(), tools.ToolCall{
				Name:   tools.ToolExecuteSQLQuery,
				Params: map[string]any{"query": rest},
			}))

		case "clockin", "clockout":
			action := "CLOCK_IN"
			if cmd == "clockout" {
				action = "CLOCK_OUT"
			}
			printResult(executor.Execute(context.Background(), tools.ToolCall{
				Name:   tools.ToolManageData,
				Params: map[string]any{"action": action},
			}))

		case "quit", "exit":
			return shutdown(store, journal)

		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
	return shutdown(store, journal)
}

// login authenticates against the seeded accounts and opens a session.
func login(store *dataset.Store, sessions *session.Manager, args string) (*model.UserSession, string) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return nil, "usage: login <role> <identifier> <password>"
	}
	role, identifier, password := model.Role(fields[0]), fields[1], fields[2]

	var name, secret string
	switch role {
	case model.RoleStudent:
		st, ok := store.StudentByNIM(identifier)
		if !ok {
			return nil, "unknown student"
		}
		name, secret = st.Name, st.Password
	case model.RoleLecturer:
		l, ok := store.LecturerByNIP(identifier)
		if !ok {
			return nil, "unknown lecturer"
		}
		name, secret = l.Name, l.Password
	case model.RoleEmployee:
		e, ok := store.EmployeeByNIK(identifier)
		if !ok {
			return nil, "unknown employee"
		}
		name, secret = e.Name, e.Password
	case model.RoleAdmin:
		a, ok := store.AdminByUsername(identifier)
		if !ok {
			return nil, "unknown admin"
		}
		name, secret = a.Name, a.Password
	default:
		return nil, "unknown role"
	}

	if password != secret {
		return nil, "wrong password"
	}
	return sessions.Login(role, name, identifier), ""
}

func printResult(res tools.Result) {
	out := map[string]any{"success": res.Success}
	if res.Error != "" {
		out["error"] = res.Error
	}
	if res.Rows != nil {
		out["rows"] = res.Rows
	}
	if res.Data != nil {
		out["data"] = res.Data
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", res)
		return
	}
	fmt.Println(string(data))
}

// shutdown reconciles the journal with memory before exit.
func shutdown(store *dataset.Store, journal *storage.DB) error {
	if journal == nil {
		return nil
	}
	var records []model.Attendance
	store.Update(func(d *model.Dataset) error {
		records = append(records, d.Attendance...)
		return nil
	})
	return journal.SaveSnapshot(records)
}
