package telegram

// User-facing texts. Kept in one place so copy changes never touch handlers.

const WelcomeUserText = `👋 Привет! Я буду присылать тебе короткий опрос в конце каждого рабочего дня.

Отвечай честно, это занимает меньше минуты:
1️⃣ Выбери, как прошел день
2️⃣ Напиши, над чем работал

Твои ответы видит только руководитель. Команда /mymonth покажет твою личную статистику за месяц.`

const WelcomeAdminText = `👋 Привет! Я бот ежедневных опросов команды.

Каждый рабочий день я опрашиваю сотрудников и присылаю тебе вечерний отчет с выгрузкой в CSV.

Нажми «📋 Меню» или отправь /help, чтобы посмотреть команды.`

const HelpUserText = `ℹ️ Доступные команды:

/start - Регистрация в опросах
/mymonth - Твоя статистика за текущий месяц
/help - Эта справка

Опрос приходит автоматически в конце рабочего дня. В выходные, праздники и отпуск опросов нет.`

const HelpAdminText = `ℹ️ Команды администратора:

📊 Отчеты:
/report - Отчет за сегодня
/createreport - Отчет за сегодня + CSV файл
/download [ДД.ММ.ГГГГ] [xlsx] - Скачать отчет за дату
/reports - Список сохраненных отчетов
/stats - Статистика бота
/test - Тестовый опрос (придет только вам)

👥 Пользователи:
/users - Список пользователей

⚙️ Расписание:
/schedule - Текущее расписание
/setsurvey ЧЧ:ММ - Время опроса
/setreport ЧЧ:ММ - Время отчета
/adminsurvey [on|off] - Участвовать в опросах самому

⏰ Напоминания:
/reminders [on|off] - Включить/выключить напоминания
/reminders set ЧЧ:ММ[,ЧЧ:ММ...] - Задать время напоминаний

📅 Выходные и праздники:
/weekends - Настройки выходных
/saturday [on|off] - Суббота рабочая/выходная
/sunday [on|off] - Воскресенье рабочее/выходное
/holidays - Праздники в этом году

🏖 Отпуска:
/vacation - Назначить отпуск сотруднику
/vacation @username ДД.ММ.ГГГГ-ДД.ММ.ГГГГ - Назначить сразу
/vacations - Список отпусков
/removevacation [@username] - Удалить отпуск`

const VacationFormatText = `🏖 Укажите период отпуска в формате:

ДД.ММ.ГГГГ-ДД.ММ.ГГГГ

Например: 01.07.2026-14.07.2026`

const AdminOnlyText = "⛔ Эта команда доступна только администратору."

const UnknownCommandText = "🤔 Не знаю такую команду. Отправьте /help для списка команд."
