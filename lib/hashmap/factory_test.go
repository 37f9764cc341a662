package hashmap

import (
	"errors"
	"testing"
)

func TestImplementationByShortName(t *testing.T) {
	cases := map[string]Implementation{
		"monkey":    ImplMonkey,
		"MONKEY":    ImplMonkey,
		" xsync ":   ImplXSync,
		"syncmap":   ImplSyncMap,
		"mutexmap":  ImplMutexMap,
		"builtin":   ImplBuiltin,
		"":          ImplBuiltin,
		"no-such":   ImplBuiltin,
		"SKIP_LIST": ImplBuiltin,
	}
	for name, want := range cases {
		if got := ImplementationByShortName(name); got != want {
			t.Errorf("ImplementationByShortName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestThreadSafety(t *testing.T) {
	for _, impl := range Implementations() {
		want := impl != ImplBuiltin
		if impl.ThreadSafe() != want {
			t.Errorf("%s.ThreadSafe() = %t, want %t", impl, impl.ThreadSafe(), want)
		}
	}
}

func TestFactoryBuildsEveryImplementation(t *testing.T) {
	for _, impl := range Implementations() {
		m := New[int64, int64](impl, Config[int64, int64]{Capacity: 100})
		if m == nil {
			t.Fatalf("New(%s) returned nil", impl)
		}
		if _, _, err := m.Put(1, 10); err != nil {
			t.Errorf("%s: Put failed: %v", impl, err)
			continue
		}
		if v, ok := m.Get(1); !ok || v != 10 {
			t.Errorf("%s: Get(1) = (%d, %t), want (10, true)", impl, v, ok)
		}
	}
}

func TestFactoryMonkeyConfig(t *testing.T) {
	m := New[int64, int64](ImplMonkey, Config[int64, int64]{
		Capacity:   2,
		LoadFactor: 0.5,
		ValueToKey: func(v int64) int64 { return v },
	})

	for i := int64(0); i < 2; i++ {
		if _, _, err := m.Put(i, i); err != nil {
			t.Fatalf("Put(%d) failed: %v", i, err)
		}
	}

	// The capacity ceiling must be wired through.
	_, _, err := m.Put(2, 2)
	if err == nil {
		t.Fatalf("Put beyond capacity succeeded")
	}

	// PutAll is the one unsupported operation of the monkey engine.
	if err := m.PutAll(map[int64]int64{9: 9}); !errors.Is(err, errors.ErrUnsupported) {
		t.Errorf("PutAll error = %v, want errors.ErrUnsupported", err)
	}
}
