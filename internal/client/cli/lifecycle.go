package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runModify(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: primacli modify <session-id>")
	}
	id := args[0]

	content, err := c.io.ReadInput("New report content: ")
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if content == "" {
		return fmt.Errorf("report content cannot be empty")
	}

	if err := c.controller.Modify(ctx, id, content); err != nil {
		return err
	}
	c.io.Println("Report updated.")
	return nil
}

func (c *Cli) runFinalize(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: primacli finalize <session-id>")
	}

	if err := c.controller.Finalize(ctx, args[0]); err != nil {
		return err
	}
	c.io.Println("Report finalized.")
	return nil
}

func (c *Cli) runPushAll(ctx context.Context) error {
	n, err := c.controller.PushAll(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		c.io.Println("Nothing to push.")
		return nil
	}
	c.io.Printf("Pushed %d report(s).\n", n)
	return nil
}
