package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// The test binary re-executes itself with this variable set to run main()
// as the real process would, so exit codes and stdout can be observed.
const execMainEnv = "KVS_CLIENT_EXEC_MAIN"

func TestMain(m *testing.M) {
	if os.Getenv(execMainEnv) == "1" {
		os.Args = append([]string{"kvs-client"}, strings.Fields(os.Getenv("KVS_CLIENT_ARGS"))...)
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

type runOutcome struct {
	stdout   string
	stderr   string
	exitCode int
}

// runClient runs the binary against 127.0.0.1:port through a -config file.
func runClient(t *testing.T, port int) runOutcome {
	t.Helper()
	iniPath := filepath.Join(t.TempDir(), "kvs-client.ini")
	ini := fmt.Sprintf("[endpoint]\nhost = 127.0.0.1\nport = %d\n\n[dial]\nio_timeout_ms = 5000\n", port)
	if err := os.WriteFile(iniPath, []byte(ini), 0644); err != nil {
		t.Fatalf("failed to write ini: %v", err)
	}

	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(),
		execMainEnv+"=1",
		"KVS_CLIENT_ARGS=-config "+iniPath,
		"KVS_HOST=",
		"KVS_PORT=",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := runOutcome{stdout: stdout.String(), stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		outcome.exitCode = exitErr.ExitCode()
	default:
		t.Fatalf("failed to run client: %v", err)
	}
	return outcome
}

// servePeer accepts one connection, reads the payload and answers with reply.
func servePeer(t *testing.T, reply []byte) (int, <-chan []byte) {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	captured := make(chan []byte, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			captured <- nil
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		n, _ := conn.Read(buf)
		conn.Write(reply)
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		rest, _ := io.ReadAll(conn)
		captured <- append(buf[:n:n], rest...)
	}()
	return listener.Addr().(*net.TCPAddr).Port, captured
}

func TestProcess_EchoPeer(t *testing.T) {
	port, captured := servePeer(t, []byte("ECHO: test\n"))

	outcome := runClient(t, port)
	if outcome.exitCode != 0 {
		t.Fatalf("Expected exit code 0, but got %d (stderr: %s)", outcome.exitCode, outcome.stderr)
	}
	if outcome.stdout != "ECHO: test\n\n" {
		t.Errorf("Expected stdout 'ECHO: test\\n\\n', but got %q", outcome.stdout)
	}

	select {
	case got := <-captured:
		if string(got) != "test\n" {
			t.Errorf("Expected peer to receive exactly 'test\\n', but got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("peer did not finish in time")
	}
}

func TestProcess_ConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	outcome := runClient(t, port)
	if outcome.exitCode != 1 {
		t.Errorf("Expected exit code 1, but got %d", outcome.exitCode)
	}
	if outcome.stdout != "" {
		t.Errorf("Expected empty stdout, but got %q", outcome.stdout)
	}
	if !strings.Contains(outcome.stderr, "exchange failed") {
		t.Errorf("Expected a diagnostic on stderr, but got %q", outcome.stderr)
	}
}

func TestProcess_InvalidUTF8Response(t *testing.T) {
	port, _ := servePeer(t, []byte{'o', 'k', 0xff, 0xfe})

	outcome := runClient(t, port)
	if outcome.exitCode != 1 {
		t.Errorf("Expected exit code 1, but got %d", outcome.exitCode)
	}
	if outcome.stdout != "" {
		t.Errorf("Expected empty stdout, but got %q", outcome.stdout)
	}
}

func TestProcess_BadConfigFile(t *testing.T) {
	cmd := exec.Command(os.Args[0])
	cmd.Env = append(os.Environ(),
		execMainEnv+"=1",
		"KVS_CLIENT_ARGS=-config "+filepath.Join(t.TempDir(), "missing.ini"),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, but got: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected empty stdout, but got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Failed to load config file") {
		t.Errorf("Expected a config diagnostic, but got %q", stderr.String())
	}
}
