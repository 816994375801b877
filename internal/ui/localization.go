package ui

import (
	"errors"

	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"

	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/export"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyExport               = "export"
	KeyStop                 = "stop"
	KeySettings             = "settings"
	KeyFile                 = "file"
	KeyLanguage             = "language"
	KeySourceFolder         = "source_folder"
	KeyDestinationFolder    = "destination_folder"
	KeyChooseFolder         = "choose_folder"
	KeyImagesFound          = "images_found"
	KeyInterpolation        = "interpolation"
	KeyJPEGQuality          = "jpeg_quality"
	KeyAutoReveal           = "auto_reveal"
	KeySave                 = "save"
	KeyCancel               = "cancel"
	KeyBrowse               = "browse"
	KeySettingsSaved        = "settings_saved"
	KeyReady                = "ready"
	KeyExportStarted        = "export_started"
	KeyExportCompleted      = "export_completed"
	KeyExportStopped        = "export_stopped"
	KeyExportFailed         = "export_failed"
	KeyStoppingExport       = "stopping_export"
	KeyExportingIOS         = "exporting_ios"
	KeyExportingAndroid     = "exporting_android"
	KeyErrorOpeningFolder   = "error_opening_folder"
	KeyErrNoSourceFolder    = "err_no_source_folder"
	KeyErrNoFiles           = "err_no_files"
	KeyErrNoScales          = "err_no_scales"
	KeyErrNoDestination     = "err_no_destination"
	KeyErrUnsupportedScale  = "err_unsupported_scale"
	KeyErrExportInProgress  = "err_export_in_progress"
	KeyErrorReadingFolder   = "error_reading_folder"
	KeyNoSourceFolderChosen = "no_source_folder_chosen"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the closest
// translation to the OS locale.
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = l.matchLanguage(string(lang.SystemLocale()))
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// matchLanguage maps a BCP 47 locale to the closest available translation
func (l *Localization) matchLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}

	// English first so it wins when nothing matches
	supported := []language.Tag{language.English, language.Russian, language.Portuguese}
	_, index, confidence := language.NewMatcher(supported).Match(tag)
	if confidence == language.No {
		return "en"
	}

	base, _ := supported[index].Base()
	return base.String()
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// ErrorText returns the localized message for a validation error, or the
// error text itself when it has no translation.
func (l *Localization) ErrorText(err error) string {
	switch {
	case errors.Is(err, export.ErrNoSourceFolder):
		return l.GetText(KeyErrNoSourceFolder)
	case errors.Is(err, export.ErrNoFiles):
		return l.GetText(KeyErrNoFiles)
	case errors.Is(err, export.ErrNoScales):
		return l.GetText(KeyErrNoScales)
	case errors.Is(err, export.ErrNoDestination):
		return l.GetText(KeyErrNoDestination)
	case errors.Is(err, density.ErrUnsupportedScale):
		return l.GetText(KeyErrUnsupportedScale)
	case errors.Is(err, export.ErrExportInProgress):
		return l.GetText(KeyErrExportInProgress)
	}
	return err.Error()
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "Asset Resizer",
		KeyExport:               "Export",
		KeyStop:                 "Stop",
		KeySettings:             "Settings",
		KeyFile:                 "File",
		KeyLanguage:             "Language",
		KeySourceFolder:         "Source Folder",
		KeyDestinationFolder:    "Destination Folder",
		KeyChooseFolder:         "Choose…",
		KeyImagesFound:          "%d images found",
		KeyInterpolation:        "Interpolation",
		KeyJPEGQuality:          "JPEG Quality",
		KeyAutoReveal:           "Open export folder when done",
		KeySave:                 "Save",
		KeyCancel:               "Cancel",
		KeyBrowse:               "Browse",
		KeySettingsSaved:        "Settings saved successfully!",
		KeyReady:                "Ready",
		KeyExportStarted:        "Export started",
		KeyExportCompleted:      "Export completed",
		KeyExportStopped:        "Export stopped",
		KeyExportFailed:         "Export failed",
		KeyStoppingExport:       "Stopping export...",
		KeyExportingIOS:         "Exporting iOS assets",
		KeyExportingAndroid:     "Exporting Android assets",
		KeyErrorOpeningFolder:   "Error opening folder",
		KeyErrNoSourceFolder:    "Select a source folder",
		KeyErrNoFiles:           "Folder contains no valid images",
		KeyErrNoScales:          "Select at least one density",
		KeyErrNoDestination:     "Choose a destination folder",
		KeyErrUnsupportedScale:  "Unsupported density selected",
		KeyErrExportInProgress:  "An export is already running",
		KeyErrorReadingFolder:   "Error reading folder",
		KeyNoSourceFolderChosen: "No folder chosen",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:             "Масштабирование ресурсов",
		KeyExport:               "Экспорт",
		KeyStop:                 "Стоп",
		KeySettings:             "Настройки",
		KeyFile:                 "Файл",
		KeyLanguage:             "Язык",
		KeySourceFolder:         "Исходная папка",
		KeyDestinationFolder:    "Папка назначения",
		KeyChooseFolder:         "Выбрать…",
		KeyImagesFound:          "Найдено изображений: %d",
		KeyInterpolation:        "Интерполяция",
		KeyJPEGQuality:          "Качество JPEG",
		KeyAutoReveal:           "Открыть папку после экспорта",
		KeySave:                 "Сохранить",
		KeyCancel:               "Отмена",
		KeyBrowse:               "Обзор",
		KeySettingsSaved:        "Настройки успешно сохранены!",
		KeyReady:                "Готово к работе",
		KeyExportStarted:        "Экспорт начат",
		KeyExportCompleted:      "Экспорт завершён",
		KeyExportStopped:        "Экспорт остановлен",
		KeyExportFailed:         "Ошибка экспорта",
		KeyStoppingExport:       "Остановка экспорта...",
		KeyExportingIOS:         "Экспорт ресурсов iOS",
		KeyExportingAndroid:     "Экспорт ресурсов Android",
		KeyErrorOpeningFolder:   "Ошибка открытия папки",
		KeyErrNoSourceFolder:    "Выберите исходную папку",
		KeyErrNoFiles:           "В папке нет подходящих изображений",
		KeyErrNoScales:          "Выберите хотя бы одну плотность",
		KeyErrNoDestination:     "Выберите папку назначения",
		KeyErrUnsupportedScale:  "Выбрана неподдерживаемая плотность",
		KeyErrExportInProgress:  "Экспорт уже выполняется",
		KeyErrorReadingFolder:   "Ошибка чтения папки",
		KeyNoSourceFolderChosen: "Папка не выбрана",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:             "Asset Resizer",
		KeyExport:               "Exportar",
		KeyStop:                 "Parar",
		KeySettings:             "Configurações",
		KeyFile:                 "Arquivo",
		KeyLanguage:             "Idioma",
		KeySourceFolder:         "Pasta de Origem",
		KeyDestinationFolder:    "Pasta de Destino",
		KeyChooseFolder:         "Escolher…",
		KeyImagesFound:          "%d imagens encontradas",
		KeyInterpolation:        "Interpolação",
		KeyJPEGQuality:          "Qualidade JPEG",
		KeyAutoReveal:           "Abrir pasta ao concluir",
		KeySave:                 "Salvar",
		KeyCancel:               "Cancelar",
		KeyBrowse:               "Navegar",
		KeySettingsSaved:        "Configurações salvas com sucesso!",
		KeyReady:                "Pronto",
		KeyExportStarted:        "Exportação iniciada",
		KeyExportCompleted:      "Exportação concluída",
		KeyExportStopped:        "Exportação interrompida",
		KeyExportFailed:         "Falha na exportação",
		KeyStoppingExport:       "Parando exportação...",
		KeyExportingIOS:         "Exportando recursos iOS",
		KeyExportingAndroid:     "Exportando recursos Android",
		KeyErrorOpeningFolder:   "Erro ao abrir pasta",
		KeyErrNoSourceFolder:    "Selecione uma pasta de origem",
		KeyErrNoFiles:           "A pasta não contém imagens válidas",
		KeyErrNoScales:          "Selecione ao menos uma densidade",
		KeyErrNoDestination:     "Escolha uma pasta de destino",
		KeyErrUnsupportedScale:  "Densidade não suportada selecionada",
		KeyErrExportInProgress:  "Uma exportação já está em andamento",
		KeyErrorReadingFolder:   "Erro ao ler pasta",
		KeyNoSourceFolderChosen: "Nenhuma pasta escolhida",
	}
}
