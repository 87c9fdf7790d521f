package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runHistory(ctx context.Context, args []string) error {
	if len(args) >= 2 && args[0] == "delete" {
		if err := c.controller.DeleteSession(ctx, args[1]); err != nil {
			return err
		}
		c.io.Println("Report deleted.")
		return nil
	}
	if len(args) > 0 {
		return fmt.Errorf("unknown history arguments: %v", args)
	}
	return c.printHistory(ctx)
}

func (c *Cli) printHistory(ctx context.Context) error {
	sessions, err := c.controller.Sessions(ctx)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		c.io.Println("No previous reports.")
		return nil
	}

	c.io.Println("=== Report history ===")
	for i, s := range sessions {
		c.io.Printf("%2d. %s %s (%s)\n", i+1, s.FirstName, s.LastName, s.ProgramName)
		c.io.Printf("    id: %s\n", s.ID)
		c.io.Printf("    Coach: %s  Date: %s\n", s.CoachName, s.Date)
		if s.Note != "" {
			c.io.Printf("    Note: %s\n", snippet(s.Note))
		}
		if s.Report != "" {
			c.io.Printf("    Report: %s\n", snippet(s.Report))
		}
	}
	return nil
}
