package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskflow-app/taskflow/internal/services"
	"github.com/taskflow-app/taskflow/types"
)

func (a *App) reportsMenu(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Relatórios ---")
	fmt.Fprintln(a.out, "1. Tarefas Concluídas")
	fmt.Fprintln(a.out, "2. Tarefas Pendentes")
	fmt.Fprintln(a.out, "3. Tarefas Atrasadas")
	fmt.Fprintln(a.out, "4. Voltar")

	choice, err := a.prompt("Escolha uma opção: ")
	if err != nil {
		return
	}

	var (
		title string
		tasks []types.Task
	)
	switch choice {
	case "1":
		title = services.ReportTitleCompleted
		tasks, err = a.reports.Completed(ctx)
	case "2":
		title = services.ReportTitlePending
		tasks, err = a.reports.Pending(ctx)
	case "3":
		title = services.ReportTitleOverdue
		tasks, err = a.reports.Overdue(ctx)
	case "4":
		return
	default:
		fmt.Fprintln(a.out, "Opção inválida.")
		return
	}
	if err != nil {
		fmt.Fprintf(a.out, "Erro ao gerar relatório: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\n"+a.reports.Render(ctx, title, tasks))

	if len(tasks) == 0 {
		return
	}
	answer, err := a.prompt("Deseja exportar este relatório para um arquivo TXT? (s/n): ")
	if err != nil {
		return
	}
	if strings.ToLower(answer) != "s" {
		return
	}

	path, err := a.reports.Export(ctx, title, tasks)
	if err != nil {
		fmt.Fprintf(a.out, "Erro ao exportar relatório: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "\nRelatório '%s' exportado com sucesso para o arquivo: %s\n", title, path)
}
