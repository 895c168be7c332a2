package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"soundeck/internal/analytics"
	"soundeck/internal/api"
	"soundeck/internal/broadcast"
	"soundeck/internal/config"
	"soundeck/internal/hotkeys"
	"soundeck/internal/input"
	"soundeck/internal/logger"
	"soundeck/internal/model"
	"soundeck/internal/player"
	"soundeck/internal/registry"
	"soundeck/internal/session"
	syncengine "soundeck/internal/sync"
	"soundeck/internal/types"
	"soundeck/internal/views"
)

var (
	Version = "dev"

	// Command-line configuration; flags override the environment.
	flags struct {
		server    string
		token     string
		tokenFile string
		dataDir   string
		lang      string
		syncPort  int
		guest     bool
		logFile   string
		debug     bool
	}
)

var rootCmd = &cobra.Command{
	Use:   "soundeck",
	Short: "A terminal soundboard with hotkeys, trimming, and cross-instance sync",
	Long: `Soundeck is a terminal soundboard. Sounds live on a card grid: click or
press enter to play, bind global hotkeys, trim clips to the part you
want, and drag cards to reorder.

With a session token the board is saved to the sound server and kept in
sync across running instances; without one it runs as a guest with the
built-in sounds.`,
	Version: Version,
	RunE:    runSoundeck,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.server, "server", "",
		"Sound server URL (defaults to SOUNDECK_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&flags.token, "token", "",
		"Session token for the sound server")
	rootCmd.PersistentFlags().StringVar(&flags.tokenFile, "token-file", "",
		"File holding the session token")
	rootCmd.PersistentFlags().StringVarP(&flags.dataDir, "data", "d", "",
		"Directory scanned for uploadable audio files")
	rootCmd.PersistentFlags().StringVar(&flags.lang, "lang", "",
		"Language for the built-in sound titles (en, es, ja)")
	rootCmd.PersistentFlags().IntVar(&flags.syncPort, "sync-port", 0,
		"Base UDP port for cross-instance sync signals")
	rootCmd.PersistentFlags().BoolVar(&flags.guest, "guest", false,
		"Run without a session: built-in sounds only, nothing saved")
	rootCmd.PersistentFlags().StringVarP(&flags.logFile, "log", "l", "",
		"Write logs to the specified file (empty disables)")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false,
		"Log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSoundeck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	logger.Init(logger.Config{OutputPath: cfg.LogPath, Debug: cfg.Debug})
	defer logger.Sync()
	logger.Info("starting", logger.String("version", Version))

	sessions := session.FromConfig(cfg.Token, cfg.TokenFile, "")
	_, hasSession := sessions.Current()
	guest := flags.guest || !hasSession

	if err := player.InitSpeaker(); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	defer player.CloseSpeaker()

	recorder := analytics.NewRecorder()
	board := registry.NewBoard(nil)
	pool := player.NewPool(player.BeepFactory, types.DefaultSettings().MasterVolume, recorder)
	defer pool.Close()

	m := model.New(model.Options{
		Board:    board,
		Pool:     pool,
		Router:   hotkeys.NewRouter(),
		Sessions: sessions,
		Recorder: recorder,
		Guest:    guest,
		Lang:     cfg.Language,
		DataDir:  cfg.DataDir,
	})

	p := tea.NewProgram(&appModel{m: m}, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if !guest {
		client := api.NewClient(cfg.ServerURL, sessions)
		client.OnSessionExpired(func() {
			p.Send(input.SessionExpiredMsg{})
		})

		var channel broadcast.Channel
		ch, err := broadcast.ListenOSC(cfg.SyncPort, cfg.SyncPortSpan, func() {
			p.Send(input.SyncSignalMsg{})
		})
		if err != nil {
			logger.Warn("sync channel unavailable", logger.ErrorField(err))
		} else {
			channel = ch
			defer ch.Close()
		}

		eng := syncengine.NewEngine(client, sessions, channel, syncengine.DefaultDebounce)
		defer eng.Close()

		m.Client = client
		m.Sync = eng
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// applyFlagOverrides lets explicitly set flags win over the environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("server") {
		cfg.ServerURL = flags.server
	}
	if f.Changed("token") {
		cfg.Token = flags.token
	}
	if f.Changed("token-file") {
		cfg.TokenFile = flags.tokenFile
	}
	if f.Changed("data") {
		cfg.DataDir = flags.dataDir
	}
	if f.Changed("lang") {
		cfg.Language = flags.lang
	}
	if f.Changed("sync-port") {
		cfg.SyncPort = flags.syncPort
	}
	if f.Changed("log") {
		cfg.LogPath = flags.logFile
	}
	if f.Changed("debug") {
		cfg.Debug = flags.debug
	}
}

// appModel adapts the application model to the bubbletea interface.
type appModel struct {
	m *model.Model
}

func (a *appModel) Init() tea.Cmd {
	if a.m.Guest {
		a.m.LoadGuestDefaults()
		return input.Envelopes(a.m.Clips())
	}
	return input.Load(a.m, true)
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.m.TermWidth = msg.Width
		a.m.TermHeight = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a, input.HandleKey(a.m, msg)

	case tea.MouseMsg:
		return a, input.HandleMouse(a.m, msg)

	case input.TickMsg:
		return a, input.HandleTick(a.m)
	}

	return a, input.Apply(a.m, msg)
}

func (a *appModel) View() string {
	switch a.m.ViewMode {
	case types.TrimView:
		return views.RenderTrimView(a.m)
	case types.SettingsView:
		return views.RenderSettingsView(a.m)
	case types.UploadView:
		return views.RenderUploadView(a.m)
	case types.HelpView:
		return views.RenderHelpView(a.m)
	default:
		return views.RenderGridView(a.m)
	}
}
