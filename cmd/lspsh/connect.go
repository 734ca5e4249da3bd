package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lspsansio/lspclient/internal/xevent"
	"github.com/lspsansio/lspclient/lspclient"
	"github.com/lspsansio/lspclient/protocol"
	"github.com/lspsansio/lspclient/transport"
)

var (
	connectLanguageID string
	connectRoot       string
)

var connectCmd = &cobra.Command{
	Use:   "connect [-- server-command args...]",
	Short: "launch a language server and drive it through an initialize handshake",
	RunE:  runConnect,
}

func init() {
	connectCmd.Flags().StringVar(&connectLanguageID, "language", "", "language id to look up in .lspsh.yaml's servers map")
	connectCmd.Flags().StringVar(&connectRoot, "root", "", "workspace root (default: current directory)")
}

func runConnect(cmd *cobra.Command, args []string) error {
	name, serverArgs, err := resolveServerCommand(args)
	if err != nil {
		return err
	}
	root, err := expandRoot(connectRoot)
	if err != nil {
		return fmt.Errorf("resolving workspace root: %w", err)
	}
	rootURI := "file://" + root

	log := xevent.Logger{Export: xevent.Printer{W: os.Stderr}}

	session, err := lspclient.NewSession(lspclient.Options{
		AutoInitialize: true,
		RootURI:        &rootURI,
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: rootURI, Name: root},
		},
	})
	if err != nil {
		return fmt.Errorf("building session: %w", err)
	}

	var st *transport.Stdio
	st = transport.NewStdio(session, func(ev lspclient.Event) {
		printEvent(log, ev)
		// Feed may have queued outbound bytes (the initialized notification
		// after the initialize response); deliver them now.
		if err := st.Flush(); err != nil {
			log.Log("flush failed", xevent.Err(err))
		}
	}, log, name, serverArgs...)
	st.Cmd().Stderr = os.Stderr
	if err := st.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	if err := st.Flush(); err != nil {
		return fmt.Errorf("flushing initialize request: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return st.Run(ctx)
}

func resolveServerCommand(args []string) (string, []string, error) {
	if len(args) > 0 {
		return args[0], args[1:], nil
	}
	if connectLanguageID == "" {
		return "", nil, fmt.Errorf("either pass a server command after -- or set --language to look one up")
	}
	entry, ok := lookupServer(connectLanguageID)
	if !ok {
		return "", nil, fmt.Errorf("no servers.%s entry in .lspsh.yaml", connectLanguageID)
	}
	return entry.Command, entry.Args, nil
}

func printEvent(log xevent.Logger, ev lspclient.Event) {
	switch e := ev.(type) {
	case *lspclient.InitializedEvent:
		log.Log("initialized", xevent.Of("serverInfo", e.ServerInfo))
	case *lspclient.ShowMessageEvent:
		log.Log("window/showMessage", xevent.Of("type", e.Type), xevent.Of("message", e.Message))
	case *lspclient.LogMessageEvent:
		log.Log("window/logMessage", xevent.Of("message", e.Message))
	case *lspclient.PublishDiagnosticsEvent:
		log.Log("publishDiagnostics", xevent.Of("uri", e.URI), xevent.Of("count", len(e.Diagnostics)))
	case *lspclient.ResponseErrorEvent:
		log.Log("response error", xevent.Of("method", e.Method), xevent.Of("code", e.Code), xevent.Of("message", e.Message))
	case *lspclient.DecodeErrorEvent:
		log.Log("decode error", xevent.Of("method", e.Method), xevent.Err(e.Err))
	default:
		log.Log(fmt.Sprintf("event %T", ev))
	}
}
