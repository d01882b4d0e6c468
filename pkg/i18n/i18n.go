package i18n

// Messages are the operator-facing lines printed by the CLI.
type Messages struct {
	InvalidNetwork    string
	SupportedNetworks string
	Generating        string
	BatchDone         string
	BatchFailed       string
	Interrupted       string
	ConfigNotLoaded   string
}

func Get(lang string) Messages {
	switch lang {
	case "ru":
		return Messages{
			InvalidNetwork:    "Неизвестная сеть: %q",
			SupportedNetworks: "Поддерживаемые сети: %s",
			Generating:        "Генерация %d карт для %s (%s)",
			BatchDone:         "Готово: %d карт -> %s, %s",
			BatchFailed:       "Ошибка генерации: %v",
			Interrupted:       "Прервано, файлы не записаны",
			ConfigNotLoaded:   "Не удалось загрузить конфигурацию: %v",
		}
	default: // "en"
		return Messages{
			InvalidNetwork:    "Invalid network: %q",
			SupportedNetworks: "Supported networks: %s",
			Generating:        "Generating %d cards for %s (%s)",
			BatchDone:         "Done: %d cards -> %s, %s",
			BatchFailed:       "Generation failed: %v",
			Interrupted:       "Interrupted, no files written",
			ConfigNotLoaded:   "Could not load config: %v",
		}
	}
}
