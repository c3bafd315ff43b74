package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"chatrelay-backend/internal/chatui"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "relay server base URL")
	stateDir := flag.String("state-dir", defaultStateDir(), "directory for persisted chat state")
	flag.Parse()

	client := chatui.NewHTTPClient(*server, 90*time.Second)
	controller := chatui.NewController(chatui.NewFileStore(*stateDir), client)
	widget := chatui.NewWeatherWidget(client)

	out := bufio.NewWriter(os.Stdout)
	printTranscript(out, controller)
	printStatus(out, controller)
	fmt.Fprintln(out, `Commands: /system <text>, /temp <0..1>, /clear, /advisor, /weather <lat> <lon>, /quit`)
	out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, "> ")
		out.Flush()
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		if handleCommand(out, controller, widget, line) {
			return
		}

		printTranscript(out, controller)
		printStatus(out, controller)
		out.Flush()
	}
}

// handleCommand runs one input line; true means quit.
func handleCommand(out *bufio.Writer, controller *chatui.Controller, widget *chatui.WeatherWidget, line string) bool {
	switch {
	case line == "/quit":
		return true

	case line == "/clear":
		controller.Clear()

	case strings.HasPrefix(line, "/system"):
		controller.SetSystemPrompt(strings.TrimSpace(strings.TrimPrefix(line, "/system")))

	case strings.HasPrefix(line, "/temp"):
		arg := strings.TrimSpace(strings.TrimPrefix(line, "/temp"))
		t, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Fprintln(out, "usage: /temp <0..1>")
			return false
		}
		controller.SetTemperature(t)
		fmt.Fprintf(out, "Temperature set to %.1f\n", controller.Temperature())

	case line == "/advisor":
		controller.ComposeAdvisorPrompt(readAdvisorInputs(out))
		fmt.Fprintln(out, "Composed prompt (press enter on an empty line to edit manually):")
		fmt.Fprintln(out, controller.Input())

	case strings.HasPrefix(line, "/weather"):
		fields := strings.Fields(strings.TrimPrefix(line, "/weather"))
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: /weather <lat> <lon>")
			return false
		}
		lat, latErr := strconv.ParseFloat(fields[0], 64)
		lon, lonErr := strconv.ParseFloat(fields[1], 64)
		if latErr != nil || lonErr != nil {
			fmt.Fprintln(out, "usage: /weather <lat> <lon>")
			return false
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		fmt.Fprintln(out, widget.Line(ctx, lat, lon))
		cancel()

	default:
		// Anything else is a chat turn. /advisor may have pre-filled the
		// compose field; a typed line replaces it.
		if line != "" {
			controller.SetInput(line)
		}
		controller.Send(context.Background())
	}
	return false
}

func readAdvisorInputs(out *bufio.Writer) chatui.PromptInputs {
	scanner := bufio.NewScanner(os.Stdin)
	ask := func(label string) string {
		fmt.Fprint(out, label+": ")
		out.Flush()
		if !scanner.Scan() {
			return ""
		}
		return scanner.Text()
	}

	return chatui.PromptInputs{
		HomeDescription: ask("Home description"),
		UsageDetails:    ask("Consumption/installations"),
		Location:        ask("Location/climate"),
		DataSources:     ask("Data sources"),
	}
}

func printTranscript(out *bufio.Writer, controller *chatui.Controller) {
	transcript := controller.Transcript()
	if len(transcript) == 0 {
		fmt.Fprintln(out, chatui.EmptyTranscriptNotice)
		return
	}

	for _, message := range transcript {
		fmt.Fprintf(out, "[%s]\n", message.Label)
		for i, paragraph := range message.Paragraphs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			for _, line := range paragraph {
				fmt.Fprintln(out, line)
			}
		}
		fmt.Fprintln(out)
	}
}

func printStatus(out *bufio.Writer, controller *chatui.Controller) {
	status := controller.Status()
	if status.Message != "" {
		fmt.Fprintf(out, "-- %s\n", status.Message)
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "chatrelay")
	}
	return ".chatrelay"
}
