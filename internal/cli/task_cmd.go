package cli

import (
	"fmt"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/contract"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// priorityFlag is a pflag.Value that rejects unknown priorities at parse
// time.
type priorityFlag struct {
	value domain.Priority
}

var _ pflag.Value = (*priorityFlag)(nil)

func (f *priorityFlag) String() string { return string(f.value) }

func (f *priorityFlag) Set(s string) error {
	p, err := domain.ParsePriority(s)
	if err != nil {
		return err
	}
	f.value = p
	return nil
}

func (f *priorityFlag) Type() string { return "low|medium|high" }

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage a contact's tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskDoneCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		title    string
		due      string
		priority = priorityFlag{value: domain.PriorityMedium}
	)

	cmd := &cobra.Command{
		Use:   "add <id-or-name>",
		Short: "Assign a task to a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := contract.OptionalDate("due", due)
			if err != nil {
				return err
			}
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			task, err := app.Contacts.AddTask(cmd.Context(), p.ID, assistant.NewTask{
				Title:    title,
				Priority: priority.value,
				DueDate:  dueDate,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskCreated(p, task, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().Var(&priority, "priority", "Task priority")
	cmd.Flags().StringVar(&due, "due", "", fmt.Sprintf("Due date YYYY-MM-DD (default %d days from now)", assistant.DefaultTaskDueDays))
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id-or-name> <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolvePerson(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Contacts.CompleteTask(cmd.Context(), p.ID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Completed %s for %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(task.Title), p.Name)
			return nil
		},
	}
}
