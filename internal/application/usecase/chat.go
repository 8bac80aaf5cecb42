package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/diillson/finsight-dashboard-go/internal/application/workflow"
	"github.com/diillson/finsight-dashboard-go/internal/shared/types"
)

// Commands understood by the interactive chat.
const (
	chatCmdQuit   = "/quit"
	chatCmdPeriod = "/period"
	chatCmdSave   = "/save"
)

// RunChat asks a single question when args.Query is set, otherwise reads questions
// line by line from in until EOF or /quit. The transcript is exported on exit when a
// report name is configured.
func (uc *DashboardUseCase) RunChat(ctx context.Context, args *types.CLIArgs, in io.Reader) error {
	session := workflow.NewChatSession(uc.backend, uc.logger)
	if err := session.Period().Select(args.Month, args.Year); err != nil {
		return err
	}

	if args.Query != "" {
		if err := uc.ask(ctx, session, args.Query); err != nil {
			return err
		}
		return uc.saveTranscript(ctx, session)
	}

	uc.console.LogInfo("Ask about your finances. %s <month> <year> changes the period, %s exports, %s exits.",
		chatCmdPeriod, chatCmdSave, chatCmdQuit)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case chatCmdQuit:
			return uc.saveTranscript(ctx, session)
		case chatCmdSave:
			if err := uc.saveTranscript(ctx, session); err != nil {
				uc.console.LogError("%v", err)
			}
			continue
		case chatCmdPeriod:
			if len(fields) != 3 {
				uc.console.LogWarning("Usage: %s <month> <year>", chatCmdPeriod)
				continue
			}
			if err := session.Period().Select(fields[1], fields[2]); err != nil {
				uc.console.LogWarning("%v", err)
				continue
			}
			uc.console.LogInfo("Period set to %s", session.Period().Period().Label())
			continue
		}

		if err := uc.ask(ctx, session, line); err != nil && !errors.Is(err, workflow.ErrIncomplete) {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading chat input: %w", err)
	}
	return uc.saveTranscript(ctx, session)
}

// ask sends one query and prints the two entries it appended.
func (uc *DashboardUseCase) ask(ctx context.Context, session *workflow.ChatSession, query string) error {
	before := len(session.Transcript())

	status := uc.console.Status("Thinking...")
	transcript, err := session.SendQuery(ctx, query)
	status.Stop()

	if errors.Is(err, workflow.ErrIncomplete) {
		uc.console.LogWarning("Please enter a question and specify the month and year.")
		return err
	}
	if err != nil {
		return err
	}

	for _, msg := range transcript[before:] {
		uc.console.DisplayChatMessage(msg)
	}
	return nil
}

func (uc *DashboardUseCase) saveTranscript(ctx context.Context, session *workflow.ChatSession) error {
	if uc.config.ReportName == "" {
		return nil
	}
	transcript := session.Transcript()
	if len(transcript) == 0 {
		return nil
	}

	path, err := uc.exportRepo.ExportTranscriptToJSON(transcript, session.Period().Period(), uc.config.ReportName, uc.config.Dir)
	if err != nil {
		return fmt.Errorf("failed to export chat transcript: %w", err)
	}
	uc.console.LogSuccess("Saved chat transcript to %s", path)
	return uc.archive(ctx, path)
}
