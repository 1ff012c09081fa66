package store_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/shelflife/internal/store"
)

// Two processes writing the same slot never leave a torn file: the result is
// exactly one writer's value.
func Test_FileKV_Concurrent_Writers_Never_Tear_A_Slot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	const writers = 8

	payload := func(n int) string {
		return fmt.Sprintf("[%s]", strings.Repeat(fmt.Sprintf(`{"w":%d},`, n), 2000)+"{}")
	}

	var wg sync.WaitGroup

	errs := make(chan error, writers)

	for n := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs <- store.NewFileKV(dir).Set(store.ItemsKey, payload(n))
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, ok, err := store.NewFileKV(dir).Get(store.ItemsKey)
	require.NoError(t, err)
	require.True(t, ok)

	matched := false

	for n := range writers {
		if got == payload(n) {
			matched = true
		}
	}

	require.True(t, matched, "slot holds a mix of writes")
}
