package langdetect

import (
	"testing"
)

func BenchmarkFromContentJavaScript(b *testing.B) {
	code := []byte(`import { readFile } from "node:fs/promises";

export async function load(path) {
	const text = await readFile(path, "utf8");
	return JSON.parse(text);
}`)
	b.ResetTimer()
	for range b.N {
		FromContent(code)
	}
}

func BenchmarkFromContentJSON(b *testing.B) {
	code := []byte(`{"name": "quill", "version": "1.0.0", "scripts": {"test": "node test.js"}}`)
	b.ResetTimer()
	for range b.N {
		FromContent(code)
	}
}

func BenchmarkFromPath(b *testing.B) {
	for range b.N {
		FromPath("packages/app/src/components/Button.tsx")
	}
}
