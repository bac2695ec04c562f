package buildinfo

const Graffiti = " _____ _____ _____ _____ _____ _____  ___  \n|_   _|  ___/  ___/  ___|  ___| ___ \\/ _ \\ \n  | | | |__ \\ `--.\\ `--.| |__ | |_/ / /_\\ \\\n  | | |  __| `--. \\`--. \\  __||    /|  _  |\n  | | | |___/\\__/ /\\__/ / |___| |\\ \\| | | |\n  \\_/ \\____/\\____/\\____/\\____/\\_| \\_\\_| |_/\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "TESSERA"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
