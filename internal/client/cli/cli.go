// Package cli is the terminal front-end of the report client. It owns no
// business logic: commands read input, call the controller and auth
// services, and print results.
package cli

import (
	"context"
	"fmt"

	"github.com/primacrm/primacli/internal/client/api"
	"github.com/primacrm/primacli/internal/client/auth"
	"github.com/primacrm/primacli/internal/client/iocli"
	"github.com/primacrm/primacli/internal/client/report"
	"github.com/primacrm/primacli/internal/config"
)

type Cli struct {
	io         iocli.IO
	apiClient  *api.Client
	auth       *auth.Service
	controller *report.Controller
	cfg        *config.Config
}

func New(
	io iocli.IO,
	apiClient *api.Client,
	authService *auth.Service,
	controller *report.Controller,
	cfg *config.Config,
) *Cli {
	return &Cli{
		io:         io,
		apiClient:  apiClient,
		auth:       authService,
		controller: controller,
		cfg:        cfg,
	}
}

// Run dispatches one command.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "report":
		return c.runReport(ctx)
	case "history":
		return c.runHistory(ctx, args)
	case "modify":
		return c.runModify(ctx, args)
	case "finalize":
		return c.runFinalize(ctx, args)
	case "push-all":
		return c.runPushAll(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage prints the command overview.
func (c *Cli) PrintUsage() {
	c.io.Println("Usage: primacli <command> [arguments]")
	c.io.Println("")
	c.io.Println("Commands:")
	c.io.Println("  login              Log in to the report backend")
	c.io.Println("  logout             Clear the stored session")
	c.io.Println("  status             Show session and token state")
	c.io.Println("  report             Start the interactive report dashboard")
	c.io.Println("  history            List stored report sessions")
	c.io.Println("  history delete <id>  Delete one stored session")
	c.io.Println("  modify <id>        Edit a stored report and push it")
	c.io.Println("  finalize <id>      Mark a report as final")
	c.io.Println("  push-all           Push every stored report in one call")
}
