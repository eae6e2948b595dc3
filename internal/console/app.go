// Package console implements the interactive menu interface: numbered
// pre-auth and post-auth menus driving the same services as the HTTP
// front-end. The console holds at most one logged-in identity at a time.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/taskflow-app/taskflow/config"
	"github.com/taskflow-app/taskflow/internal/logging"
	"github.com/taskflow-app/taskflow/internal/services"
	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/types"
)

// App is an interactive console session.
type App struct {
	users   *services.UserService
	tasks   *services.TaskService
	reports *services.ReportService

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	// current is the single logged-in identity of this session. The
	// zero value means signed out.
	current types.User
}

// NewApp wires a console session against the configured data directory.
func NewApp(cfg config.Config) (*App, error) {
	log := logging.New()

	userRepo := store.NewUserRepository(cfg.DataDir, log)
	taskRepo := store.NewTaskRepository(cfg.DataDir, log)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo,
		services.WithOwnershipEnforcement(cfg.EnforceOwnership))
	reportService := services.NewReportService(taskRepo, userRepo, cfg.ExportDir)

	app := newApp(userService, taskService, reportService, os.Stdin, os.Stdout)
	app.interactive = true
	return app, nil
}

func newApp(
	users *services.UserService,
	tasks *services.TaskService,
	reports *services.ReportService,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		users:   users,
		tasks:   tasks,
		reports: reports,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run drives the menu loop until the user exits or input ends. A recover
// around each iteration keeps a single bad operation from terminating the
// session.
func (a *App) Run(ctx context.Context) {
	for a.step(ctx) {
	}
}

func (a *App) step(ctx context.Context) (running bool) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(a.out, "\n--- ERRO ---\n")
			fmt.Fprintf(a.out, "Ocorreu um erro inesperado: %v\n", r)
			fmt.Fprintln(a.out, "O sistema continuará rodando. Por favor, tente novamente.")
			running = true
		}
	}()

	if a.signedIn() {
		return a.signedInMenu(ctx)
	}
	return a.mainMenu(ctx)
}

func (a *App) signedIn() bool {
	return a.current.ID != 0
}

func (a *App) mainMenu(ctx context.Context) bool {
	fmt.Fprintln(a.out, "\n--- TaskFlow - Gerenciador de Tarefas ---")
	fmt.Fprintln(a.out, "1. Login")
	fmt.Fprintln(a.out, "2. Cadastrar Novo Usuário")
	fmt.Fprintln(a.out, "3. Sair")

	choice, err := a.prompt("Escolha uma opção: ")
	if err != nil {
		return false
	}

	switch choice {
	case "1":
		a.login(ctx)
	case "2":
		a.register(ctx)
	case "3":
		fmt.Fprintln(a.out, "Saindo do TaskFlow. Até mais!")
		return false
	default:
		fmt.Fprintln(a.out, "Opção inválida. Tente novamente.")
	}
	return true
}

func (a *App) signedInMenu(ctx context.Context) bool {
	fmt.Fprintf(a.out, "\n--- Menu de %s ---\n", a.current.Name)
	fmt.Fprintln(a.out, "1. Minhas Tarefas")
	fmt.Fprintln(a.out, "2. Criar Nova Tarefa")
	fmt.Fprintln(a.out, "3. Editar Tarefa")
	fmt.Fprintln(a.out, "4. Concluir Tarefa")
	fmt.Fprintln(a.out, "5. Excluir Tarefa")
	fmt.Fprintln(a.out, "6. Relatórios")
	fmt.Fprintln(a.out, "7. Logout")

	choice, err := a.prompt("Escolha uma opção: ")
	if err != nil {
		return false
	}

	switch choice {
	case "1":
		a.listTasks(ctx)
	case "2":
		a.createTask(ctx)
	case "3":
		a.editTask(ctx)
	case "4":
		a.completeTask(ctx)
	case "5":
		a.deleteTask(ctx)
	case "6":
		a.reportsMenu(ctx)
	case "7":
		a.logout()
	default:
		fmt.Fprintln(a.out, "Opção inválida. Tente novamente.")
	}
	return true
}

func (a *App) login(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Login ---")
	login, err := a.prompt("Login: ")
	if err != nil {
		return
	}
	secret, err := a.promptSecret("Senha: ")
	if err != nil {
		return
	}

	user, err := a.users.Authenticate(ctx, login, secret)
	if err != nil {
		fmt.Fprintln(a.out, "Erro: Login ou senha inválidos.")
		return
	}
	a.current = user
	fmt.Fprintf(a.out, "Bem-vindo(a), %s!\n", user.Name)
}

func (a *App) register(ctx context.Context) {
	fmt.Fprintln(a.out, "\n--- Cadastro de Novo Usuário ---")
	name, err := a.prompt("Nome completo: ")
	if err != nil {
		return
	}
	email, err := a.prompt("E-mail: ")
	if err != nil {
		return
	}
	login, err := a.prompt("Login (será usado para acesso): ")
	if err != nil {
		return
	}
	secret, err := a.promptSecret("Senha: ")
	if err != nil {
		return
	}

	if _, err := a.users.Register(ctx, name, email, login, secret); err != nil {
		switch err {
		case services.ErrLoginTaken:
			fmt.Fprintf(a.out, "Erro: O login '%s' já está em uso.\n", login)
		case services.ErrMissingField:
			fmt.Fprintln(a.out, "Erro: Todos os campos são obrigatórios.")
		default:
			fmt.Fprintf(a.out, "Erro ao cadastrar: %v\n", err)
		}
		return
	}
	fmt.Fprintf(a.out, "Usuário '%s' cadastrado com sucesso! Você pode fazer login agora.\n", login)
}

func (a *App) logout() {
	fmt.Fprintf(a.out, "Logout de %s realizado com sucesso.\n", a.current.Name)
	a.current = types.User{}
}
