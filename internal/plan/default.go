package plan

// Default returns the conventional deployment pipeline: install dependencies
// from the requirements manifest, collect static assets, and apply database
// migrations, all non-interactively. It is used when no plan file exists, so
// that a bare invocation behaves like the classic three-line deploy script.
func Default(python, pip string) *Plan {
	if python == "" {
		python = "python"
	}
	if pip == "" {
		pip = "pip"
	}
	return &Plan{
		Name: "deploy",
		Steps: []*Step{
			{
				Name:    "install-deps",
				Command: []string{pip, "install", "-r", "requirements.txt"},
			},
			{
				Name:    "collect-static",
				Command: []string{python, "manage.py", "collectstatic", "--noinput"},
			},
			{
				Name:    "migrate",
				Command: []string{python, "manage.py", "migrate", "--noinput"},
			},
		},
	}
}
