package config

const (
	defaultConfigPath    = "~/.config/hanzireel/config.toml"
	defaultMediaDir      = "media"
	defaultStateDir      = "~/.local/share/hanzireel"
	defaultLogDir        = "~/.local/share/hanzireel/logs"
	defaultPixelWidth    = 1080
	defaultPixelHeight   = 1920
	defaultFrameWidth    = 9.0
	defaultFrameHeight   = 16.0
	defaultFPS           = 30
	defaultBackground    = "#f9f5f0"
	defaultOutputFile    = "chinese_word_animation"
	defaultPosterQuality = 90
	defaultFFmpegBinary  = "ffmpeg"
	defaultVideoCodec    = "libx264"
	defaultPixelFormat   = "yuv420p"
	defaultPreset        = "medium"
	defaultCRF           = 20
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// cjkFontCandidates are tried in order when no CJK font is configured.
var cjkFontCandidates = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/arphic/uming.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaDir: defaultMediaDir,
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Render: Render{
			PixelWidth:    defaultPixelWidth,
			PixelHeight:   defaultPixelHeight,
			FrameWidth:    defaultFrameWidth,
			FrameHeight:   defaultFrameHeight,
			FPS:           defaultFPS,
			Background:    defaultBackground,
			OutputFile:    defaultOutputFile,
			Poster:        true,
			PosterQuality: defaultPosterQuality,
		},
		Encoding: Encoding{
			FFmpegBinary: defaultFFmpegBinary,
			VideoCodec:   defaultVideoCodec,
			PixelFormat:  defaultPixelFormat,
			Preset:       defaultPreset,
			CRF:          defaultCRF,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
