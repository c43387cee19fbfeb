// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"prog-cli/pkg/alias"
	"prog-cli/pkg/invocation"
)

func entry(key string, v alias.Value) alias.Alias {
	return alias.Alias{Key: alias.ParseKey(key), Value: v}
}

// testDictionary mirrors a small cmake-style config document.
func testDictionary() *alias.Dictionary {
	return alias.New(
		entry("build", alias.Command("make all")),
		entry("run(1)", alias.Command("./$1")),
		entry("swap(2)", alias.Command("$2 $1")),
		entry("push", alias.List("git add .", "git commit", "git push")),
		entry("tag(1)", alias.List("git tag $1", "git push origin $1")),
		entry("configure", alias.Map(alias.New(
			entry("release", alias.List("mkdir -p build", "cmake -DCMAKE_BUILD_TYPE=Release -B ./build .")),
			entry("debug", alias.Command("cmake -DCMAKE_BUILD_TYPE=Debug -B ./build .")),
			entry("deep", alias.Map(alias.New(
				entry("leaf", alias.Command("echo leaf")),
			))),
		))),
	)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		inv  invocation.Invocation
		want []string
	}{
		{"declarative command", invocation.Declarative("build"), []string{"make all"}},
		{"declarative list", invocation.Declarative("push"), []string{"git add .", "git commit", "git push"}},
		{"declarative leaves placeholders", invocation.Declarative("run"), []string{"./$1"}},
		{"imperative command", invocation.Imperative("run", "5"), []string{"./5"}},
		{"imperative positional", invocation.Imperative("swap", "a", "b"), []string{"a b"}},
		{"imperative list", invocation.Imperative("tag", "v1.0"), []string{"git tag v1.0", "git push origin v1.0"}},
		{"imperative without placeholders", invocation.Imperative("build", "x"), []string{"make all"}},
		{"indexical", invocation.Indexical("push", 0, 2), []string{"git add .", "git push"}},
		{"indexical list order", invocation.Indexical("push", 2, 0), []string{"git add .", "git push"}},
		{"indexical out of range", invocation.Indexical("push", 5), []string{}},
		{"indexical duplicates", invocation.Indexical("push", 1, 1), []string{"git commit"}},
		{"indexical empty", invocation.Indexical("push"), []string{}},
		{
			"scoped",
			invocation.Scoped("configure", invocation.Declarative("debug"), invocation.Indexical("release", 1)),
			[]string{"cmake -DCMAKE_BUILD_TYPE=Debug -B ./build .", "cmake -DCMAKE_BUILD_TYPE=Release -B ./build ."},
		},
		{"scoped empty", invocation.Scoped("configure"), []string{}},
		{"selective", invocation.Selective("configure", invocation.Declarative("release")), []string{"mkdir -p build", "cmake -DCMAKE_BUILD_TYPE=Release -B ./build ."}},
		{
			"selective nested",
			invocation.Selective("configure", invocation.Selective("deep", invocation.Declarative("leaf"))),
			[]string{"echo leaf"},
		},
		{
			"scoped inside scoped",
			invocation.Scoped("configure", invocation.Scoped("deep", invocation.Declarative("leaf"))),
			[]string{"echo leaf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.inv, testDictionary())
			if err != nil {
				t.Fatalf("Resolve() returned error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Shadowing(t *testing.T) {
	t.Parallel()

	dict := alias.New(
		entry("x", alias.Command("first")),
		entry("x", alias.Command("second")),
	)

	got, err := Resolve(invocation.Declarative("x"), dict)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"second"}, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_KindMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inv      invocation.Invocation
		wantPath string
		wantMsg  string
		wantKind invocation.Kind
	}{
		{"declarative map", invocation.Declarative("configure"), "configure", "cannot invoke map alias declaratively", invocation.KindDeclarative},
		{"imperative map", invocation.Imperative("configure", "x"), "configure", "cannot invoke map alias imperatively", invocation.KindImperative},
		{"scoped command", invocation.Scoped("build", invocation.Declarative("x")), "build", "only map aliases can be invoked with a scope", invocation.KindScoped},
		{"scoped list", invocation.Scoped("push"), "push", "only map aliases can be invoked with a scope", invocation.KindScoped},
		{"indexical command", invocation.Indexical("build", 0), "build", "only list aliases can be indexed", invocation.KindIndexical},
		{"indexical map", invocation.Indexical("configure", 0), "configure", "only list aliases can be indexed", invocation.KindIndexical},
		{"selective command", invocation.Selective("build", invocation.Declarative("x")), "build", "only map aliases can be invoked selectively", invocation.KindSelective},
		{"selective list", invocation.Selective("push", invocation.Declarative("x")), "push", "only map aliases can be invoked selectively", invocation.KindSelective},
		{"nested", invocation.Selective("configure", invocation.Indexical("debug", 0)), "configure.debug", "only list aliases can be indexed", invocation.KindIndexical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.inv, testDictionary())
			if got != nil {
				t.Errorf("Resolve() returned commands %v alongside an error", got)
			}
			if !errors.Is(err, ErrKindMismatch) {
				t.Fatalf("Resolve() error = %v, want ErrKindMismatch", err)
			}
			var kindErr *KindMismatchError
			if !errors.As(err, &kindErr) {
				t.Fatalf("Resolve() error should be *KindMismatchError, got %T", err)
			}
			if kindErr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", kindErr.Path, tt.wantPath)
			}
			if kindErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", kindErr.Message, tt.wantMsg)
			}
			if kindErr.Invocation != tt.wantKind {
				t.Errorf("Invocation = %s, want %s", kindErr.Invocation, tt.wantKind)
			}
		})
	}
}

func TestResolve_LookupError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		inv      invocation.Invocation
		wantName string
		wantPath string
	}{
		{"root", invocation.Declarative("deploy"), "deploy", ""},
		{"scoped", invocation.Scoped("configure", invocation.Declarative("profile")), "profile", "configure"},
		{"selective nested", invocation.Selective("configure", invocation.Selective("deep", invocation.Declarative("nope"))), "nope", "configure.deep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Resolve(tt.inv, testDictionary())
			var lookupErr *alias.LookupError
			if !errors.As(err, &lookupErr) {
				t.Fatalf("Resolve() error = %v, want *alias.LookupError", err)
			}
			if lookupErr.Name != tt.wantName || lookupErr.Path != tt.wantPath {
				t.Errorf("LookupError = {%q, %q}, want {%q, %q}", lookupErr.Name, lookupErr.Path, tt.wantName, tt.wantPath)
			}
		})
	}
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	invs, err := invocation.ParseTargets("configure.debug; build; run(app); push[2]")
	if err != nil {
		t.Fatalf("ParseTargets() returned error: %v", err)
	}

	got, err := ResolveAll(invs, testDictionary())
	if err != nil {
		t.Fatalf("ResolveAll() returned error: %v", err)
	}
	want := []string{
		"cmake -DCMAKE_BUILD_TYPE=Debug -B ./build .",
		"make all",
		"./app",
		"git push",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveAll_FailsWholeBatch(t *testing.T) {
	t.Parallel()

	invs := []invocation.Invocation{
		invocation.Declarative("build"),
		invocation.Declarative("missing"),
		invocation.Declarative("push"),
	}

	got, err := ResolveAll(invs, testDictionary())
	if !errors.Is(err, alias.ErrAliasNotFound) {
		t.Fatalf("ResolveAll() error = %v, want ErrAliasNotFound", err)
	}
	if got != nil {
		t.Errorf("ResolveAll() returned partial result %v", got)
	}
}

func TestResolveAll_Empty(t *testing.T) {
	t.Parallel()

	got, err := ResolveAll(nil, testDictionary())
	if err != nil {
		t.Fatalf("ResolveAll(nil) returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ResolveAll(nil) = %v, want empty", got)
	}
}

func TestResolve_DoesNotMutateDictionary(t *testing.T) {
	t.Parallel()

	dict := testDictionary()

	first, err := Resolve(invocation.Imperative("tag", "v1"), dict)
	if err != nil {
		t.Fatal(err)
	}
	first[0] = "changed"

	declared, err := Resolve(invocation.Declarative("push"), dict)
	if err != nil {
		t.Fatal(err)
	}
	declared[0] = "changed"

	second, err := Resolve(invocation.Imperative("tag", "v2"), dict)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"git tag v2", "git push origin v2"}, second); diff != "" {
		t.Errorf("substitution leaked between invocations (-want +got):\n%s", diff)
	}

	push, _ := dict.Lookup("push")
	if push.Value.List[0] != "git add ." {
		t.Errorf("dictionary list was modified: %q", push.Value.List[0])
	}
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"single", "./$1", []string{"5"}, "./5"},
		{"positional not numeric", "$2 $1", []string{"a", "b"}, "a b"},
		{"surplus placeholders", "cp $1 $2", []string{"src"}, "cp src $2"},
		{"surplus args", "echo $1", []string{"a", "b"}, "echo a"},
		{"no args", "echo $1", nil, "echo $1"},
		{"no placeholders", "make", []string{"x"}, "make"},
		{"multi-digit", "echo $10 $3", []string{"x", "y"}, "echo x y"},
		{"dollar without digits", "echo $HOME $1", []string{"x"}, "echo $HOME x"},
		{"adjacent", "$1$2", []string{"a", "b"}, "ab"},
		{"arg containing placeholder", "$1 $2", []string{"$2", "b"}, "$2 b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Substitute(tt.cmd, tt.args); got != tt.want {
				t.Errorf("Substitute(%q, %q) = %q, want %q", tt.cmd, tt.args, got, tt.want)
			}
		})
	}
}

func TestKindMismatchError_Error(t *testing.T) {
	t.Parallel()

	err := &KindMismatchError{
		Path:       "build",
		Invocation: invocation.KindIndexical,
		Alias:      alias.ValueCommand,
		Message:    "only list aliases can be indexed",
	}
	want := `alias kind mismatch: only list aliases can be indexed ("build" is a command alias)`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
