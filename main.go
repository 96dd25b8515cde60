package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	advisoryx "github.com/webroker/concierge/agent/advisory"
	conciergex "github.com/webroker/concierge/agent/concierge"
	contractx "github.com/webroker/concierge/agent/contract"
	directoryx "github.com/webroker/concierge/agent/directory"
	leadx "github.com/webroker/concierge/agent/lead"
	llmx "github.com/webroker/concierge/agent/llm"
	promptx "github.com/webroker/concierge/agent/prompt"
	toolx "github.com/webroker/concierge/agent/tool"
	configx "github.com/webroker/concierge/pkg/config"
	_ "github.com/webroker/concierge/pkg/logger/autoload"
	openrouterx "github.com/webroker/concierge/pkg/openrouter"
)

// main wires the orchestrator core and runs a minimal terminal chat loop.
// A real deployment replaces this loop with its own rendering layer; the
// core only hands back plain data.
func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	conciergeCfg := llmCfg.OpenRouterFor(llmx.RoleConcierge)
	chatModel, err := conciergeCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create concierge model")
	}

	dir := directoryx.Default()
	book := leadx.DefaultBook()

	dispatcher, err := toolx.NewDispatcher(dir)
	if err != nil {
		log.Fatal().Err(err).Msg("create tool dispatcher")
	}

	prompts := promptx.LoadPromptSet()
	session, err := conciergex.NewSession(ctx, chatModel, dispatcher, book, prompts.Concierge)
	if err != nil {
		log.Fatal().Err(err).Msg("create concierge session")
	}

	advisoryCfg := llmCfg.OpenRouterFor(llmx.RoleAdvisory)
	client := openrouterx.NewClient(advisoryCfg)
	if client == nil {
		log.Fatal().Msg("create advisory client")
	}
	advisor, err := advisoryx.New(client, advisoryCfg.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("create advisory service")
	}

	fmt.Println("webroker concierge — type a message, /leads, /analyze <n>, /project <location>|<size>|<zoning>, /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/leads":
			printLeads(book.List())
		case strings.HasPrefix(line, "/analyze"):
			analyze(ctx, advisor, book, strings.TrimSpace(strings.TrimPrefix(line, "/analyze")))
		case strings.HasPrefix(line, "/project"):
			evaluate(ctx, advisor, strings.TrimSpace(strings.TrimPrefix(line, "/project")))
		default:
			chat(ctx, session, line)
		}
	}
}

func chat(ctx context.Context, session *conciergex.Session, text string) {
	reply, err := session.Send(ctx, text)
	if err != nil {
		fmt.Println("!", err)
		return
	}
	fmt.Println(reply.Text)
	for _, b := range reply.Brokers {
		fmt.Printf("  -> %s (%s) rating %.1f, %d deals\n", b.Name, b.Specialty, b.Rating, b.DealsClosed)
	}
}

func printLeads(leads []contractx.Lead) {
	if len(leads) == 0 {
		fmt.Println("no leads yet")
		return
	}
	for i, l := range leads {
		fmt.Printf("[%d] %s | %s | %s | %s | score %d\n", i, l.Name, l.Budget, l.Preferences, l.Urgency, l.MatchScore)
	}
}

func analyze(ctx context.Context, advisor *advisoryx.Service, book *leadx.Book, arg string) {
	leads := book.List()
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(leads) {
		fmt.Println("usage: /analyze <lead index from /leads>")
		return
	}
	fmt.Println(advisor.AnalyzeLead(ctx, leads[idx]))
}

func evaluate(ctx context.Context, advisor *advisoryx.Service, arg string) {
	parts := strings.SplitN(arg, "|", 3)
	if len(parts) != 3 {
		fmt.Println("usage: /project <location>|<size>|<zoning>")
		return
	}
	project := contractx.Project{
		Location: strings.TrimSpace(parts[0]),
		Size:     strings.TrimSpace(parts[1]),
		Zoning:   strings.TrimSpace(parts[2]),
		Status:   contractx.ProjectAvailable,
	}
	fmt.Println(advisor.EvaluateProject(ctx, project))
}
