// internals/features/notifications/service/texts.go
package service

import "fmt"

// Operator-facing and member-facing copy, in the two languages the product
// ships. Language defaults to Hindi when the request does not say otherwise.

type Language string

const (
	LangHindi   Language = "hindi"
	LangEnglish Language = "english"
)

func NormalizeLanguage(s string) Language {
	if s == string(LangEnglish) {
		return LangEnglish
	}
	return LangHindi
}

// StrategyPrompt is the menu shown after a bulk batch is composed.
func StrategyPrompt(lang Language, totalStudents int) string {
	if lang == LangEnglish {
		return fmt.Sprintf(`3 ways to send message to %d students:

Method 1: Send one by one (Easiest)
Method 2: Use WhatsApp Broadcast
Method 3: Copy all numbers and send manually

Which method would you like to choose?`, totalStudents)
	}
	return fmt.Sprintf(`%d स्टूडेंट्स को मैसेज भेजने के 3 तरीके:

तरीका 1: एक-एक करके भेजें (सबसे आसान)
तरीका 2: WhatsApp Broadcast का उपयोग करें
तरीका 3: सभी नंबर कॉपी करें और मैन्युअल भेजें

कौन सा तरीका चुनना चाहते हैं?`, totalStudents)
}

// ExpiryReminderBody addresses the member whose membership ends today or
// tomorrow.
func ExpiryReminderBody(lang Language, studentName, libraryName, endDate string, expiresToday bool) string {
	if lang == LangEnglish {
		if expiresToday {
			return fmt.Sprintf("Hello %s, your membership at %s expires today (%s). Please renew to keep your seat.", studentName, libraryName, endDate)
		}
		return fmt.Sprintf("Hello %s, your membership at %s expires tomorrow (%s). Please renew to keep your seat.", studentName, libraryName, endDate)
	}
	if expiresToday {
		return fmt.Sprintf("नमस्ते %s, %s में आपकी मेंबरशिप आज (%s) समाप्त हो रही है। सीट बनाए रखने के लिए कृपया रिन्यू करें।", studentName, libraryName, endDate)
	}
	return fmt.Sprintf("नमस्ते %s, %s में आपकी मेंबरशिप कल (%s) समाप्त हो रही है। सीट बनाए रखने के लिए कृपया रिन्यू करें।", studentName, libraryName, endDate)
}

// OwnerExpirySummaryBody is the owner's own heads-up about the day's scan.
func OwnerExpirySummaryBody(lang Language, libraryName string, expiredToday, expiringTomorrow int) string {
	if lang == LangEnglish {
		return fmt.Sprintf("%s membership summary. Expired today: %d, Expiring tomorrow: %d.", libraryName, expiredToday, expiringTomorrow)
	}
	return fmt.Sprintf("%s मेंबरशिप सारांश। आज समाप्त: %d, कल समाप्त: %d।", libraryName, expiredToday, expiringTomorrow)
}
