package workspace

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/frametile/internal/frame"
	"github.com/1broseidon/frametile/internal/ldl"
)

func newTestManager(t *testing.T, tags ...string) *Manager {
	t.Helper()
	m, err := NewManager(DefaultOptions(), tags...)
	require.NoError(t, err)
	return m
}

func addWindows(t *testing.T, m *Manager, ids ...frame.WindowID) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, m.AddWindow(id))
	}
}

// isSubsequence reports whether the bytes of sub appear in s in order.
func isSubsequence(sub, s string) bool {
	i := 0
	for j := 0; i < len(sub) && j < len(s); j++ {
		if sub[i] == s[j] {
			i++
		}
	}
	return i == len(sub)
}

func TestLoad_FullLayoutsRoundTrip(t *testing.T) {
	layouts := []string{
		"(clients max:0 W)",
		"(clients max:1 W W)",
		"(split horizontal:0.9:0 (split vertical:0.5:1 (clients max:0) (clients grid:0)) (clients horizontal:0))",
		"(split vertical:0.4:1 (clients max:2 W W W) (clients grid:0 W))",
		"(split horizontal:0.3:1 (clients vertical:0 W) (split vertical:0.5:0 (clients grid:1 W W) (clients max:0)))",
	}
	for _, layout := range layouts {
		t.Run(layout, func(t *testing.T) {
			m := newTestManager(t)
			n := strings.Count(layout, "W")
			for i := 0; i < n; i++ {
				id := frame.WindowID(0x200001 + i)
				addWindows(t, m, id)
				layout = strings.Replace(layout, "W", id.String(), 1)
			}

			res, err := m.LoadText("", layout)
			require.NoError(t, err)
			assert.Empty(t, res.Warnings)
			assert.Empty(t, res.Orphans)

			got, err := m.Dump("")
			require.NoError(t, err)
			assert.Equal(t, layout, got)
		})
	}
}

func TestLoad_RoundTripNormalisesWhitespace(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 0x10, 0x20)

	_, err := m.LoadText("", "  ( split   vertical:0.5:0\n(clients max:0 0x10 )(clients grid:0 0x20))  ")
	require.NoError(t, err)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(split vertical:0.5:0 (clients max:0 0x10) (clients grid:0 0x20))", got)
}

func TestLoad_PartialLayoutIsSubsequenceOfDump(t *testing.T) {
	partials := []string{
		"(clients max:0)",
		"(clients grid:0)",
		" (  clients   vertical:0  )",
		"(split horizontal:0.3:0)",
		"(split vertical:0.3:0 (clients horizontal:0))",
		"(split vertical:0.3:0 (split vertical:0.4:1))",
	}
	befores := []string{
		"(clients vertical:0 0x1 0x2 0x3)",
		"(split horizontal:0.5:1 (clients max:0 0x1) (clients grid:1 0x2 0x3))",
		"(split vertical:0.5:0 (split horizontal:0.5:0 (clients max:0 0x1) (clients max:0 0x2)) (clients horizontal:0 0x3))",
	}
	for bi, before := range befores {
		for _, layout := range partials {
			t.Run(fmt.Sprintf("%d/%s", bi, layout), func(t *testing.T) {
				m := newTestManager(t)
				addWindows(t, m, 1, 2, 3)
				_, err := m.LoadText("", before)
				require.NoError(t, err)

				_, err = m.LoadText("", layout)
				require.NoError(t, err)

				got, err := m.Dump("")
				require.NoError(t, err)
				stripped := strings.ReplaceAll(layout, " ", "")
				assert.True(t, isSubsequence(stripped, strings.ReplaceAll(got, " ", "")),
					"%q is not a subsequence of %q", stripped, got)

				count, err := m.ClientCount("")
				require.NoError(t, err)
				assert.Equal(t, 3, count, "no window may be lost: %s", got)
			})
		}
	}
}

func TestLoad_OmittedChildKeepsLiveSubtree(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 1, 2, 3)
	_, err := m.LoadText("", "(split horizontal:0.5:0 (clients max:0 0x1) (split vertical:0.5:1 (clients grid:0 0x2) (clients max:0 0x3)))")
	require.NoError(t, err)

	_, err = m.LoadText("", "(split vertical:0.3:1 (clients horizontal:0 0x1))")
	require.NoError(t, err)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(split vertical:0.3:1 (clients horizontal:0 0x1) (split vertical:0.5:1 (clients grid:0 0x2) (clients max:0 0x3)))", got)
}

func TestLoad_DeeperLayoutGetsEmptyLeaves(t *testing.T) {
	m := newTestManager(t)

	_, err := m.LoadText("", "(split vertical:0.3:0 (split vertical:0.4:1))")
	require.NoError(t, err)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(split vertical:0.3:0 (split vertical:0.4:1 (clients vertical:0) (clients vertical:0)) (clients vertical:0))", got)
}

func TestLoad_OmittedClientsKeepsWindows(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 1, 2)

	_, err := m.LoadText("", "(clients max:0)")
	require.NoError(t, err)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(clients max:0 0x1 0x2)", got)
}

func TestLoad_OrphansGoToFocusedFrame(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 1, 2, 3)

	res, err := m.LoadText("", "(split horizontal:0.5:1 (clients max:0 0x1) (clients grid:0 0x2))")
	require.NoError(t, err)
	assert.Equal(t, []frame.WindowID{3}, res.Orphans)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(split horizontal:0.5:1 (clients max:0 0x1) (clients grid:0 0x2 0x3))", got)
}

func TestLoad_UnknownWindowIDsWarn(t *testing.T) {
	for _, layout := range []string{
		"(clients horizontal:0 0234)",
		"(clients vertical:0 0x2343)",
		"(clients vertical:0 1713)",
	} {
		t.Run(layout, func(t *testing.T) {
			m := newTestManager(t)
			res, err := m.LoadText("", layout)
			require.NoError(t, err)
			require.Len(t, res.Warnings, 1)
			assert.True(t, strings.HasPrefix(res.Warnings[0], "Warning: Unknown window IDs"), res.Warnings[0])

			got, err := m.Dump("")
			require.NoError(t, err)
			assert.NotContains(t, got, "0x")
		})
	}
}

func TestLoad_UnknownAndKnownMixed(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 0x10)

	res, err := m.LoadText("", "(clients max:2 0x99 0x10 0x98 0x99)")
	require.NoError(t, err)
	assert.Equal(t, []string{"Warning: Unknown window IDs: 0x99, 0x98"}, res.Warnings)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(clients max:0 0x10)", got)
}

func TestLoad_BringsWindowsFromOtherTags(t *testing.T) {
	for _, total := range []int{1, 3} {
		for bring := 0; bring <= total; bring++ {
			t.Run(fmt.Sprintf("%d-of-%d", bring, total), func(t *testing.T) {
				m := newTestManager(t, "default")
				var ids []string
				for i := 0; i < total; i++ {
					id := frame.WindowID(0x100 + i)
					addWindows(t, m, id)
					ids = append(ids, id.String())
				}
				require.NoError(t, m.AddTag("other"))

				layout := "(clients horizontal:0"
				if bring > 0 {
					layout += " " + strings.Join(ids[:bring], " ")
				}
				layout += ")"

				res, err := m.LoadText("other", layout)
				require.NoError(t, err)
				assert.Len(t, res.Brought, bring)

				onDefault, err := m.ClientCount("default")
				require.NoError(t, err)
				onOther, err := m.ClientCount("other")
				require.NoError(t, err)
				assert.Equal(t, total-bring, onDefault)
				assert.Equal(t, bring, onOther)

				got, err := m.Dump("other")
				require.NoError(t, err)
				assert.Equal(t, layout, got)

				for i, id := range ids {
					wid, err := ldl.ParseWindowID(id)
					require.NoError(t, err)
					tagName, ok := m.TagOf(wid)
					require.True(t, ok)
					if i < bring {
						assert.Equal(t, "other", tagName)
					} else {
						assert.Equal(t, "default", tagName)
					}
				}
			})
		}
	}
}

func TestLoad_FocusFollowsSelection(t *testing.T) {
	for _, total := range []int{1, 3} {
		for focus := 0; focus < total; focus++ {
			m := newTestManager(t)
			var ids []string
			for i := 0; i < total; i++ {
				id := frame.WindowID(0x500 + i)
				addWindows(t, m, id)
				ids = append(ids, id.String())
			}
			layout := fmt.Sprintf("(clients horizontal:%d %s)", focus, strings.Join(ids, " "))
			_, err := m.LoadText("", layout)
			require.NoError(t, err)

			got, err := m.Dump("")
			require.NoError(t, err)
			assert.Equal(t, layout, got)

			w, ok := m.FocusedWindow()
			require.True(t, ok)
			assert.Equal(t, frame.WindowID(0x500+focus), w)
		}
	}
}

func TestLoad_DuplicateMentionFirstWins(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 1, 2)

	_, err := m.LoadText("", "(split vertical:0.5:0 (clients max:0 0x1 0x2) (clients max:0 0x1))")
	require.NoError(t, err)

	got, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, "(split vertical:0.5:0 (clients max:0 0x1 0x2) (clients max:0))", got)
}

func TestLoad_SyntaxErrorLeavesTreeUntouched(t *testing.T) {
	m := newTestManager(t)
	addWindows(t, m, 1)
	before, err := m.Dump("")
	require.NoError(t, err)

	_, err = m.LoadText("", "(split horizontal:0.5:0 x)")
	var syn *ldl.SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, 24, syn.Offset)

	after, err := m.Dump("")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLoad_UnknownTag(t *testing.T) {
	m := newTestManager(t)
	_, err := m.LoadText("nope", "(clients max:0)")
	assert.True(t, errors.Is(err, ErrUnknownTag))

	_, err = m.Dump("nope")
	assert.True(t, errors.Is(err, ErrUnknownTag))
}

func TestLoad_RespectsConfiguredBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = frame.Bounds{FractionMin: 0.05, FractionMax: 0.95}
	m, err := NewManager(opts)
	require.NoError(t, err)

	_, err = m.LoadText("", "(split vertical:0.05:0)")
	require.NoError(t, err)
}
