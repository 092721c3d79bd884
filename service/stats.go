package service

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gochat/model"
)

// StatsService logs daily usage counts. Scheduled from main via cron.
type StatsService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewStatsService(db *gorm.DB, logger *logrus.Logger) *StatsService {
	return &StatsService{db: db, logger: logger}
}

func (s *StatsService) ReportUsageTask() error {
	s.logger.Infof("[%s] Start scheduled task ReportUsageTask", "scheduled task")
	startTime := time.Now()

	var users, conversations, messages int64
	if err := s.db.Model(&model.User{}).Count(&users).Error; err != nil {
		s.logger.Warnf("[%s] count users error, %s", "scheduled task", err)
		return err
	}
	if err := s.db.Model(&model.Conversation{}).Count(&conversations).Error; err != nil {
		s.logger.Warnf("[%s] count conversations error, %s", "scheduled task", err)
		return err
	}
	if err := s.db.Model(&model.Message{}).Count(&messages).Error; err != nil {
		s.logger.Warnf("[%s] count messages error, %s", "scheduled task", err)
		return err
	}

	s.logger.Infof("[%s] usage: %d users, %d conversations, %d messages",
		"scheduled task", users, conversations, messages)

	duration := time.Since(startTime)
	s.logger.Infof("[%s] Finished scheduled task ReportUsageTask cost %v", "scheduled task", duration)
	return nil
}
