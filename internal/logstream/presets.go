package logstream

import "time"

// Terminal mimics a dev server session.
func Terminal(project string) Settings {
	return Settings{
		Name:     "TERMINAL",
		Interval: 2 * time.Second,
		Backlog: []string{
			"~/projects/" + project + " $ npm run dev",
			"",
			"> " + project + "@0.1.0 dev",
			"> vite",
			"",
			"  VITE v4.4.9  ready in 430 ms",
			"",
			"  ➜  Local:   http://localhost:5173/",
		},
		Pool: []string{
			"[webpack] Compiling...",
			"[webpack] Compiled successfully in 120ms",
			"[eslint] No issues found.",
			"Files successfully emitted",
			"[HMR] Waiting for update signal...",
			"[HMR] App is up to date.",
			"Type-checking in progress...",
		},
		Prob: 0.3,
		Keep: 50,
	}
}

// Output mimics editor extension chatter.
func Output() Settings {
	return Settings{
		Name:     "OUTPUT",
		Interval: 3500 * time.Millisecond,
		Backlog: []string{
			"[Info  - 10:23:01] Initializing language features...",
			"[Info  - 10:23:02] Reading .eslintrc configuration",
			"[Info  - 10:23:02] ESLint server running in node v16.14.0",
		},
		Pool: []string{
			"Prettier: Code formatted.",
			"GitLens: Repository state updated.",
			"Python: Analyzed 2 files.",
			"TS Server: Request completed in 12ms.",
		},
		Prob: 0.2,
		Keep: 30,
		Format: func(ts, line string) string {
			return "[Info  - " + ts + "] " + line
		},
	}
}
