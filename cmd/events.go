package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/slug"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	RunE:  runEventsList,
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new event",
	Long: `Create a new event. The URL slug is derived from the name.

Examples:
  eventlens events create "Summer Wedding" --date 2025-06-14`,
	Args: cobra.ExactArgs(1),
	RunE: runEventsCreate,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsCreateCmd)

	eventsCreateCmd.Flags().String("date", "", "Event date in YYYY-MM-DD format (defaults to today)")
}

func runEventsList(cmd *cobra.Command, args []string) error {
	if _, err := initBackend(); err != nil {
		return err
	}

	ctx := context.Background()
	events, err := database.GetEventReader(ctx)
	if err != nil {
		return err
	}

	list, err := events.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No events yet. Create one with 'eventlens events create'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UID\tNAME\tSLUG\tDATE")
	fmt.Fprintln(w, "---\t----\t----\t----")
	for i := range list {
		e := &list[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.UID, e.Name, e.Slug, e.EventDate.Format("2006-01-02"))
	}
	w.Flush()
	return nil
}

func runEventsCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	dateFlag := mustGetString(cmd, "date")

	eventSlug := slug.Make(name)
	if eventSlug == "" {
		return errors.New("event name must contain at least one letter or digit")
	}

	eventDate := time.Now()
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return errors.New("date must be in YYYY-MM-DD format")
		}
		eventDate = parsed
	}

	if _, err := initBackend(); err != nil {
		return err
	}

	ctx := context.Background()
	events, err := database.GetEventWriter(ctx)
	if err != nil {
		return err
	}

	event := &database.Event{
		UID:       uuid.NewString(),
		Name:      name,
		Slug:      eventSlug,
		EventDate: eventDate,
	}
	if err := events.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("creating event: %w", err)
	}

	fmt.Printf("Created event %s\n", event.Name)
	fmt.Printf("  UID:  %s\n", event.UID)
	fmt.Printf("  Slug: %s\n", event.Slug)
	fmt.Printf("  Date: %s\n", event.EventDate.Format("2006-01-02"))
	return nil
}
