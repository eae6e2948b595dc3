package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskDisplayStatus(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.Local)

	tests := []struct {
		name   string
		task   Task
		want   TaskStatus
	}{
		{
			name: "pending with due date yesterday displays overdue",
			task: Task{Status: StatusPending, DueDate: "14/03/2026"},
			want: StatusOverdue,
		},
		{
			name: "pending due today is not overdue",
			task: Task{Status: StatusPending, DueDate: "15/03/2026"},
			want: StatusPending,
		},
		{
			name: "pending due tomorrow is not overdue",
			task: Task{Status: StatusPending, DueDate: "16/03/2026"},
			want: StatusPending,
		},
		{
			name: "completed is never reclassified regardless of date",
			task: Task{Status: StatusCompleted, DueDate: "01/01/2020"},
			want: StatusCompleted,
		},
		{
			name: "unparseable due date stays pending",
			task: Task{Status: StatusPending, DueDate: "not-a-date"},
			want: StatusPending,
		},
		{
			name: "empty due date stays pending",
			task: Task{Status: StatusPending, DueDate: ""},
			want: StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.DisplayStatus(now))
		})
	}
}

func TestTaskDisplayStatusDoesNotMutateTask(t *testing.T) {
	task := Task{Status: StatusPending, DueDate: "01/01/2020"}

	got := task.DisplayStatus(time.Now())

	assert.Equal(t, StatusOverdue, got)
	assert.Equal(t, StatusPending, task.Status, "stored status must not be rewritten")
}
