package launcher

const (
	MsgInstallComplete  = "Installation complete!"
	MsgDownloadComplete = "Download complete!"
	MsgLaunched         = "Minecraft launched!"
	MsgLaunchError      = "Error launching Minecraft."
)

// Milestones are the log lines worth surfacing outside the launcher window.
var Milestones = []string{MsgInstallComplete, MsgDownloadComplete, MsgLaunched, MsgLaunchError}
