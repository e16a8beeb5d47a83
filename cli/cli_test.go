package cli

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/miniml/cli/cmd"
	"github.com/ardnew/miniml/lang"
	"github.com/ardnew/miniml/log"
	"github.com/ardnew/miniml/pkg"
)

func TestRun_ConfigFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG directories only apply on linux")
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(pkg.EnvVar("path"), "")

	defer log.SetDefault(log.Default())

	require.NoError(t, mkdirAllRequired())
	require.NoError(t, os.WriteFile(pkg.ConfigFile(), []byte("max-depth: 5\n"), 0o600))

	src := filepath.Join(t.TempDir(), "down.ml")
	require.NoError(t, os.WriteFile(src, []byte(
		"let rec down n = if (n == 0) then 0 else (down (n - 1)) ;;\n(down 100) ;;\n",
	), 0o600))

	exit := func(code int) { t.Fatalf("unexpected exit %d", code) }

	err := Run(context.Background(), exit, "run", src)
	require.ErrorIs(t, err, cmd.ErrSourceFailed)
	require.ErrorIs(t, err, lang.ErrMaxDepthExceeded)

	// flags override the configuration file
	require.NoError(t, Run(context.Background(), exit, "--max-depth=0", "run", src))
}
