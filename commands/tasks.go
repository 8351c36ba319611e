package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pomotrack/pomotrack/internal/api"
	"github.com/pomotrack/pomotrack/internal/util"
)

var (
	tasksCmd = &cobra.Command{
		Use:   "tasks",
		Short: "Manage the task list",
	}

	tasksListCmd = &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE:  runTasksList,
	}

	tasksAddCmd = &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTasksAdd,
	}

	tasksDoneCmd = &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksDone,
	}

	tasksRmCmd = &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasksRm,
	}
)

func init() {
	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksDoneCmd, tasksRmCmd)
	rootCmd.AddCommand(tasksCmd)
}

func runTasksList(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	tasks, err := client.ListTasks(context.Background())
	if err != nil {
		return taskError(err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet")
		return nil
	}

	for _, t := range tasks {
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		fmt.Printf("%4d %s %s\n", t.ID, marker, t.Text)
	}
	return nil
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("task text cannot be empty")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	created, err := client.CreateTask(context.Background(), text)
	if err != nil {
		return taskError(err)
	}

	util.LogInfof("Task %d created", created.ID)
	fmt.Printf("Added task %d: %s\n", created.ID, created.Text)
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	completed := true
	updated, err := client.UpdateTask(context.Background(), id, api.TaskUpdate{Completed: &completed})
	if err != nil {
		return taskError(err)
	}

	fmt.Printf("Completed task %d: %s\n", updated.ID, updated.Text)
	return nil
}

func runTasksRm(cmd *cobra.Command, args []string) error {
	if err := initRuntime(); err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteTask(context.Background(), id); err != nil {
		return taskError(err)
	}

	fmt.Printf("Deleted task %d\n", id)
	return nil
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func taskError(err error) error {
	if api.IsUnauthorized(err) {
		return fmt.Errorf("not signed in, run 'pomotrack login' first")
	}
	return err
}
