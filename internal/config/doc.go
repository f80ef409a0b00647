// Package config loads ratectl's settings.
//
// Configuration lives in a single directory, ~/.config/ratectl by default or
// the directory given with --config. It holds one file, config.yaml:
//
//	moduleID: murongchaopin
//	moduleDir: /data/adb/modules/{{ .ModuleID }}
//	scriptPath: "{{ .ModuleDir }}/scripts/web_handler.sh"
//	configFile: "{{ .ModuleDir }}/config/mode.txt"
//	logFile: "{{ .ModuleDir }}/daemon.log"
//	bridge:
//	  timeout: 3s
//	  legacyCallback: false
//	labels:
//	  batchSize: 3
//	  batchDelay: 50ms
//	commands:
//	  slot: getprop ro.boot.slot_suffix
//
// Any field may be omitted; omitted fields keep their defaults. The path
// fields are Go templates with the sprig function set, rendered after
// validation with the module identity as data. moduleDir is rendered first
// so the others can refer to it.
package config
