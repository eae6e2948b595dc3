package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/taskflow-app/taskflow/internal/services"
	"github.com/taskflow-app/taskflow/internal/store"
)

func (a *App) listTasks(ctx context.Context) {
	tasks, err := a.tasks.List(ctx, a.current, true)
	if err != nil {
		fmt.Fprintf(a.out, "Erro ao listar tarefas: %v\n", err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "Nenhuma tarefa encontrada.")
		return
	}

	now := time.Now()
	fmt.Fprintln(a.out, "\n--- Lista de Tarefas ---")
	for _, task := range tasks {
		fmt.Fprintf(a.out, "ID: %d | Título: %s | Prazo: %s | Status: %s | Responsável: %s\n",
			task.ID, task.Title, task.DueDate, task.DisplayStatus(now), task.OwnerName)
	}
}

func (a *App) createTask(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Criar Nova Tarefa ---")
	title, err := a.prompt("Título da Tarefa: ")
	if err != nil {
		return
	}
	description, err := a.prompt("Descrição: ")
	if err != nil {
		return
	}
	dueDate, err := a.prompt("Prazo (DD/MM/AAAA): ")
	if err != nil {
		return
	}

	task, err := a.tasks.Create(ctx, a.current, title, description, dueDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDueDate):
			fmt.Fprintln(a.out, "Erro: Formato de prazo inválido. Use DD/MM/AAAA.")
		case errors.Is(err, services.ErrMissingField):
			fmt.Fprintln(a.out, "Erro: O título é obrigatório.")
		default:
			fmt.Fprintf(a.out, "Erro ao criar tarefa: %v\n", err)
		}
		return
	}
	fmt.Fprintf(a.out, "Tarefa '%s' criada com sucesso! ID: %d\n", task.Title, task.ID)
}

func (a *App) editTask(ctx context.Context) {
	a.listTasks(ctx)
	fmt.Fprintln(a.out, "\n--- Editar Tarefa ---")

	id, ok := a.promptTaskID("ID da tarefa a editar: ")
	if !ok {
		return
	}

	fmt.Fprintln(a.out, "Deixe em branco para não alterar o campo.")
	title, err := a.prompt("Novo Título: ")
	if err != nil {
		return
	}
	description, err := a.prompt("Nova Descrição: ")
	if err != nil {
		return
	}
	dueDate, err := a.prompt("Novo Prazo (DD/MM/AAAA): ")
	if err != nil {
		return
	}

	_, err = a.tasks.Edit(ctx, a.current, id, optional(title), optional(description), optional(dueDate))
	if err != nil {
		a.printTaskError(err, "editar")
		return
	}
	fmt.Fprintln(a.out, "Tarefa atualizada com sucesso.")
}

func (a *App) completeTask(ctx context.Context) {
	a.listTasks(ctx)
	fmt.Fprintln(a.out, "\n--- Concluir Tarefa ---")

	id, ok := a.promptTaskID("ID da tarefa a concluir: ")
	if !ok {
		return
	}

	task, err := a.tasks.Complete(ctx, a.current, id)
	if err != nil {
		a.printTaskError(err, "concluir")
		return
	}
	fmt.Fprintf(a.out, "Tarefa '%s' concluída!\n", task.Title)
}

func (a *App) deleteTask(ctx context.Context) {
	a.listTasks(ctx)
	fmt.Fprintln(a.out, "\n--- Excluir Tarefa ---")

	id, ok := a.promptTaskID("ID da tarefa a excluir: ")
	if !ok {
		return
	}

	if err := a.tasks.Delete(ctx, a.current, id); err != nil {
		a.printTaskError(err, "excluir")
		return
	}
	fmt.Fprintln(a.out, "Tarefa excluída.")
}

// promptTaskID reads a numeric task identifier. Malformed input is
// reported and the operation aborted without ending the session.
func (a *App) promptTaskID(label string) (int, bool) {
	raw, err := a.prompt(label)
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(a.out, "ID inválido.")
		return 0, false
	}
	return id, true
}

func (a *App) printTaskError(err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintln(a.out, "Erro: Tarefa não encontrada.")
	case errors.Is(err, services.ErrForbidden):
		fmt.Fprintln(a.out, "Erro: Esta tarefa pertence a outro usuário.")
	case errors.Is(err, services.ErrInvalidDueDate):
		fmt.Fprintln(a.out, "Erro: Formato de prazo inválido. Use DD/MM/AAAA.")
	default:
		fmt.Fprintf(a.out, "Erro ao %s tarefa: %v\n", action, err)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
