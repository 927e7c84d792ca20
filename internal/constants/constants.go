package constants

const (
	Version        = `0.1.0`
	AppName        = `noteplan`
	ConfigFile     = `config`
	ConfigFileType = `yaml`
	ConfigDir      = `.noteplan`
	EnvFile        = `.env`
	EnvPrefix      = `NOTEPLAN`
	LogFile        = `noteplan.log`

	DriverFile     = `file`
	DriverBolt     = `bolt`
	DriverPostgres = `postgres`

	PreviewLength = 100
	Ellipsis      = `...`
)
