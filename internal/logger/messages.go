package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// video
		"Opened %s (%dx%d, %.2f fps, %d frames)": "%s を開きました (%dx%d, %.2f fps, %d フレーム)",
		"Frame count corrected from %d to %d":    "フレーム数を %d から %d に補正しました",
		"Accumulating %d frames":                 "%d フレームを積算中",
		"Accumulated %d frames":                  "%d フレームを積算しました",
		"Decode failed at frame %d":              "フレーム %d のデコードに失敗しました",
		"Closed %s":                              "%s を閉じました",

		// cli
		"Loaded configuration from %s": "%s から設定を読み込みました",
		"Wrote frame %d to %s":         "フレーム %d を %s に書き出しました",
		"Wrote mean image to %s":       "平均画像を %s に書き出しました",
		"Scanning %s":                  "%s を走査中",
		"Skipping %s: %v":              "%s をスキップします: %v",
	})
}
