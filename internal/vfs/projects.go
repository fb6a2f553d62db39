package vfs

import "github.com/verte-zerg/lookbusy/internal/model"

// ReactProject is the explorer tree of the frontend workspace.
func ReactProject() *Node {
	root := Folder("FOO.IO",
		expanded(Folder("src",
			Folder("components",
				File("Button.tsx"),
				File("Header.tsx"),
				File("Sidebar.tsx"),
			),
			File("App.tsx"),
			File("main.tsx"),
			File("vite-env.d.ts"),
		)),
		Folder("public",
			File("favicon.ico"),
			File("robots.txt"),
		),
		File("package.json"),
		File("tsconfig.json"),
		File("README.md"),
	)
	root.Expanded = true
	return sortTree(root)
}

// NodeProject is the explorer tree of the backend workspace.
func NodeProject() *Node {
	root := Folder("BACKEND-API",
		expanded(Folder("src",
			Folder("controllers",
				File("authController.ts"),
				File("userController.ts"),
			),
			Folder("models",
				File("User.ts"),
				File("Order.ts"),
			),
			File("app.ts"),
			File("server.ts"),
		)),
		File(".env"),
		File("package.json"),
		File("docker-compose.yml"),
	)
	root.Expanded = true
	return sortTree(root)
}

// ProjectFor returns the starting tree for a job.
func ProjectFor(job model.Job) *Node {
	if job == model.JobManager || job == model.JobAnalyst {
		return NodeProject()
	}
	return ReactProject()
}

// InitialFile is the file opened when a workspace starts.
func InitialFile(root *Node) string {
	for _, candidate := range []string{"src/App.tsx", "src/app.ts"} {
		if n := root.Find(candidate); n != nil && n.Kind == KindFile {
			return candidate
		}
	}
	var first string
	root.Walk(func(path string, _ int, n *Node) bool {
		if first == "" && n.Kind == KindFile {
			first = path
		}
		return first == ""
	})
	return first
}

func expanded(n *Node) *Node {
	n.Expanded = true
	return n
}

func sortTree(root *Node) *Node {
	root.Walk(func(_ string, _ int, n *Node) bool {
		if n.Kind == KindFolder {
			SortChildren(n.Children)
		}
		return true
	})
	return root
}
