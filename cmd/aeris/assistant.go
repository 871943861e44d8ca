package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	orchestration "github.com/koscakluka/aeris/core"
	"github.com/koscakluka/aeris/core/actions/aircraft"
	"github.com/koscakluka/aeris/core/actions/apps"
	"github.com/koscakluka/aeris/core/actions/browser"
	"github.com/koscakluka/aeris/core/actions/messaging"
	"github.com/koscakluka/aeris/core/actions/messaging/discord"
	"github.com/koscakluka/aeris/core/actions/messaging/slack"
	"github.com/koscakluka/aeris/core/actions/messaging/telegram"
	"github.com/koscakluka/aeris/core/actions/search"
	"github.com/koscakluka/aeris/core/actions/weather"
	"github.com/koscakluka/aeris/core/alarms"
	"github.com/koscakluka/aeris/core/audio/miniaudio"
	"github.com/koscakluka/aeris/core/audio/portaudio"
	"github.com/koscakluka/aeris/core/events"
	"github.com/koscakluka/aeris/core/intents"
	"github.com/koscakluka/aeris/core/llms/groq"
	"github.com/koscakluka/aeris/core/memory"
	"github.com/koscakluka/aeris/core/memory/sqlite"
	stt "github.com/koscakluka/aeris/core/speechtotext/deepgram"
	tts "github.com/koscakluka/aeris/core/texttospeech/deepgram"
	"github.com/koscakluka/aeris/internal/config"
	"github.com/koscakluka/aeris/internal/metrics"
	"github.com/koscakluka/aeris/internal/telemetry"
	"github.com/koscakluka/aeris/internal/tui"
)

type audioDevice interface {
	orchestration.AudioInput
	orchestration.AudioOutput
	Close()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runAssistant(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	facts, err := openFacts(cfg)
	if err != nil {
		return err
	}
	defer facts.Close()

	var controller *orchestration.TurnController
	alarmManager := alarms.NewManager(func(entry alarms.Entry) {
		controller.RingAlarm(entry)
	})
	defer alarmManager.Stop()

	exporter := metrics.NewExporter(cfg.Metrics.Addr)
	observer := metrics.NewObserver(exporter.Registry())

	var renderer orchestration.Renderer
	var ui *tui.UI
	if headless {
		renderer = newConsoleRenderer(os.Stdout)
	} else {
		ui = tui.New(tui.Actions{
			Submit:     func(text string) { go controller.HandleText(ctx, text) },
			PushToTalk: func() { controller.PushToTalk() },
			Interrupt:  func() { controller.Interrupt() },
		}, tea.WithAltScreen(), tea.WithContext(ctx))
		renderer = ui
	}

	opener := browser.NewSystem()
	radar := aircraft.NewRadar(
		aircraft.NewOpenSky(cfg.Aircraft.Position,
			aircraft.WithBaseURL(cfg.Aircraft.OpenSkyURL),
			aircraft.WithRadiusKM(cfg.Aircraft.RadiusKM)),
		opener,
		cfg.Aircraft.Position,
	)

	opts := []orchestration.ControllerOption{
		orchestration.WithRouter(newRouter(cfg, opener, radar)),
		orchestration.WithSession(memory.NewSession(memory.WithMaxHistory(cfg.Memory.MaxHistory))),
		orchestration.WithFactStore(facts),
		orchestration.WithClassifier(groq.NewClassifier(groq.NewClient(cfg.Groq.APIKey, groq.WithModel(cfg.Groq.Model)))),
		orchestration.WithAlarms(alarmManager),
		orchestration.WithAircraftFastPath(radar),
		orchestration.WithWakeAliases(cfg.Wake.Aliases...),
		orchestration.WithHistoryLines(cfg.Memory.HistoryLines),
		orchestration.WithRenderer(renderer),
		orchestration.WithEventListener(observer.Observe),
	}

	group, ctx := errgroup.WithContext(ctx)

	if !headless {
		voice, closeAudio, err := newVoice(cfg, func(level float64) {
			renderer.SetAudioLevel(level)
			observer.Observe(events.NewUserAudioLevel(level))
		})
		if err != nil {
			return err
		}
		defer closeAudio()
		if err := voice.Start(ctx); err != nil {
			return fmt.Errorf("failed to start voice: %w", err)
		}
		opts = append(opts, orchestration.WithSpeech(voice))
	}

	controller = orchestration.NewTurnController(opts...)

	if cfg.Metrics.Addr != "" {
		group.Go(func() error { return exporter.Serve(ctx) })
	}

	if headless {
		group.Go(func() error { return controller.Run(ctx) })
		group.Go(func() error {
			defer stop()
			return readRequests(ctx, os.Stdin, controller)
		})
	} else {
		group.Go(func() error { return controller.Run(ctx) })
		group.Go(func() error {
			defer stop()
			return ui.Run(ctx)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newRouter(cfg *config.Config, opener browser.Opener, radar *aircraft.Radar) *intents.Router {
	messenger := messaging.NewHandler()
	contacts := messaging.Contacts(cfg.Messaging.Contacts)

	if token := cfg.Messaging.Telegram.Token; token != "" {
		messenger.Register("telegram", telegram.New(token, contacts))
	}
	if token := cfg.Messaging.Discord.Token; token != "" {
		if sender, err := discord.New(token, contacts); err != nil {
			logger.Warn("discord messaging disabled", "error", err)
		} else {
			messenger.Register("discord", sender)
		}
	}
	if token := cfg.Messaging.Slack.Token; token != "" {
		if sender, err := slack.New(token, contacts); err != nil {
			logger.Warn("slack messaging disabled", "error", err)
		} else {
			messenger.Register("slack", sender)
		}
	}

	return intents.NewRouter(
		intents.WithHandler(intents.NameOpenApp, &apps.Handler{Launcher: apps.CommandLauncher{Command: cfg.Apps.Launcher}}, ""),
		intents.WithHandler(intents.NameWeatherReport, &weather.Handler{Opener: opener}, ""),
		intents.WithHandler(intents.NameSearch, &search.Handler{Opener: opener}, ""),
		intents.WithHandler(intents.NameSendMessage, messenger, ""),
		intents.WithHandler(intents.NameAircraft, radar, ""),
	)
}

func newVoice(cfg *config.Config, onLevel func(float64)) (*orchestration.Voice, func(), error) {
	var device audioDevice
	switch cfg.Audio.Backend {
	case "portaudio":
		client, err := portaudio.NewClient(cfg.Audio.BufferSize)
		if err != nil {
			return nil, nil, err
		}
		device = client
	default:
		client, err := miniaudio.NewClient()
		if err != nil {
			return nil, nil, err
		}
		device = client
	}

	transcriber := stt.NewTranscriptionClient(cfg.Deepgram.APIKey,
		stt.WithModel(cfg.Deepgram.Model),
		stt.WithLanguage(cfg.Deepgram.Language))
	synthesizer, err := tts.NewTextToSpeechClient(cfg.Deepgram.APIKey,
		tts.WithVoice(tts.Voice(cfg.Deepgram.Voice)),
		tts.WithEncodingInfo(device.EncodingInfo()))
	if err != nil {
		device.Close()
		return nil, nil, err
	}

	voice := orchestration.NewVoice(transcriber, synthesizer, device, device,
		orchestration.WithCaptureTimeout(cfg.Audio.CaptureTimeout),
		orchestration.WithAudioLevelCallback(onLevel))

	return voice, func() {
		_ = transcriber.Close()
		device.Close()
	}, nil
}

func openFacts(cfg *config.Config) (*sqlite.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Memory.FactsPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create facts directory: %w", err)
	}
	return sqlite.Open(cfg.Memory.FactsPath)
}

// setupLogging keeps log output off the terminal the UI draws on: headless
// runs log to stderr, UI runs only to --log-file.
func setupLogging() (func(), error) {
	var sink io.Writer
	var closeSink func()
	switch {
	case headless:
		sink, closeSink = os.Stderr, func() {}
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink, closeSink = f, func() { _ = f.Close() }
	default:
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: slog.LevelDebug})))
	shutdown, err := telemetry.SetupLogging(sink)
	if err != nil {
		closeSink()
		return nil, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(ctx)
		closeSink()
	}, nil
}

// readRequests answers every stdin line as a typed request until EOF.
func readRequests(ctx context.Context, in io.Reader, controller *orchestration.TurnController) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			controller.HandleText(ctx, line)
		}
	}
}
