package config

// Default returns the baseline configuration applied before a config file is
// decoded over it.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: "~/.local/share/director/staging",
			OutputDir:  "~/.local/share/director/outputs",
			LogDir:     "~/.local/share/director/logs",
			DBPath:     "~/.local/share/director/queue.db",
		},
		LLM: LLM{
			BaseURL:        "https://openrouter.ai/api/v1/chat/completions",
			Model:          "openai/gpt-4o",
			Title:          "director",
			TimeoutSeconds: 60,
		},
		Transcription: Transcription{
			BaseURL:        "https://api.openai.com/v1/audio/transcriptions",
			Model:          "whisper-1",
			TimeoutSeconds: 120,
		},
		Pixabay: Pixabay{
			BaseURL:         "https://pixabay.com/api/audio/",
			DefaultTrackURL: "https://cdn.pixabay.com/download/audio/2022/05/27/audio_1808fbf07a.mp3",
			TimeoutSeconds:  15,
		},
		Browser: Browser{
			Binary:         "director-agent",
			Headless:       true,
			ViewportWidth:  3840,
			ViewportHeight: 2160,
			TypingDelayMS:  100,
			ScrollStepPX:   500,
		},
		Render: Render{
			Binary:         "director-render",
			CompositionID:  "DirectorAgent",
			FPS:            30,
			Width:          3840,
			Height:         2160,
			TimeoutSeconds: 1800,
		},
		Workflow: Workflow{
			ActionWaitSeconds:   2,
			PostRollSeconds:     2,
			PollIntervalSeconds: 2,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return err
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.DBPath, err = expandPath(c.Paths.DBPath); err != nil {
		return err
	}
	if c.Workflow.ActionWaitSeconds <= 0 {
		c.Workflow.ActionWaitSeconds = 2
	}
	if c.Workflow.PostRollSeconds < 0 {
		c.Workflow.PostRollSeconds = 0
	}
	if c.Workflow.PollIntervalSeconds <= 0 {
		c.Workflow.PollIntervalSeconds = 2
	}
	return nil
}
