package sniff

import (
	"testing"

	"runpad/internal/lang"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		want lang.Language
		ok   bool
	}{
		{
			name: "java public class",
			src:  "public class Main { public static void main(String[] args){} }",
			want: lang.Java,
			ok:   true,
		},
		{
			name: "c include",
			src:  "#include <stdio.h>\nint main(void) { printf(\"hi\\n\"); return 0; }\n",
			want: lang.C,
			ok:   true,
		},
		{
			name: "cpp stream",
			src:  "#include <iostream>\nint main() { std::cout << \"hi\"; }\n",
			want: lang.Cpp,
			ok:   true,
		},
		{
			name: "cpp cout without std prefix",
			src:  "  #include <iostream>\nusing namespace std;\nint main() { cout << 1; }\n",
			want: lang.Cpp,
			ok:   true,
		},
		{
			name: "python import",
			src:  "import sys\nprint(sys.argv)\n",
			want: lang.Python,
			ok:   true,
		},
		{
			name: "python from import",
			src:  "from os import path\n",
			want: lang.Python,
			ok:   true,
		},
		{
			name: "python def",
			src:  "def greet(name):\n    return name\n",
			want: lang.Python,
			ok:   true,
		},
		{
			name: "python class",
			src:  "class Greeter:\n    pass\n",
			want: lang.Python,
			ok:   true,
		},
		{
			name: "bare print is unknown",
			src:  "print('hello')\n",
			want: lang.Unknown,
		},
		{
			name: "java import without public class is unknown",
			src:  "import java.util.List;\nclass Foo {}\n",
			want: lang.Unknown,
		},
		{
			name: "include not at line start",
			src:  "// see #include <stdio.h>\n",
			want: lang.Unknown,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Detect(tc.src)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Detect() = (%q, %v), want (%q, %v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestDetectPrecedence(t *testing.T) {
	t.Parallel()

	// A Python docstring mentioning a public class still reads as Java.
	src := "def f():\n    \"\"\"public class Foo\"\"\"\n"
	if got, _ := Detect(src); got != lang.Java {
		t.Fatalf("java rule must win, got %q", got)
	}

	src = "#include <stdio.h>\ndef\nimport os\n"
	if got, _ := Detect(src); got != lang.C {
		t.Fatalf("include rule must win over python, got %q", got)
	}
}

func TestJavaPublicClass(t *testing.T) {
	t.Parallel()

	name, ok := JavaPublicClass("import x;\n\npublic   class HelloWorld {\n}")
	if !ok || name != "HelloWorld" {
		t.Fatalf("unexpected class: %q %v", name, ok)
	}
	if _, ok := JavaPublicClass("class Hidden {}"); ok {
		t.Fatalf("package-private class must not match")
	}
}

func TestHasJavaMain(t *testing.T) {
	t.Parallel()

	valid := []string{
		"public static void main(String[] args) {}",
		"public static void main(String []argv) {}",
		"static public void main(String... a) {}",
		"public static void main(final String[] x) {}",
		"public static void main(String args[]) {}",
		"public static void main( String[] ) {}",
	}
	for _, src := range valid {
		if !HasJavaMain(src) {
			t.Fatalf("expected main in %q", src)
		}
	}

	invalid := []string{
		"public void main(String[] args) {}",
		"public static int main(String[] args) {}",
		"public static void main() {}",
		"public static void mainly(String[] args) {}",
	}
	for _, src := range invalid {
		if HasJavaMain(src) {
			t.Fatalf("unexpected main in %q", src)
		}
	}
}
