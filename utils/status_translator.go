package utils

import "apply/models"

// trustMeStatusMap — соответствие числовых кодов уведомлений TrustMe
// статусам журнала заявки. Коды вне таблицы трактуются как NEED_SIGNATURE.
var trustMeStatusMap = map[int]string{
	0: models.StatusNeedSignature,
	1: models.StatusNeedSignature,
	2: models.StatusNeedSignature,
	3: models.StatusCheckDocs,
	4: models.StatusReProcessing,
	5: models.StatusNeedSignatureTerminateContract,
	6: models.StatusReProcessing,
	7: models.StatusCheckDocs,
	8: models.StatusReProcessing,
	9: models.StatusReProcessing,
}

// TranslateTrustMeStatus переводит код уведомления TrustMe в статус журнала
func TranslateTrustMeStatus(code int) string {
	if status, ok := trustMeStatusMap[code]; ok {
		return status
	}
	return models.StatusNeedSignature
}
